package dashboard

// Identificadores de sección del panel.
const (
	SectionDashboard     = "dashboard"
	SectionProdutos      = "produtos"
	SectionCadastramento = "cadastramento"
	SectionSintese       = "sintese"
	SectionFichaTecnica  = "ficha-tecnica"
	SectionIntegracoes   = "integracoes"
	SectionAprendizado   = "aprendizado"
	SectionSuporte       = "suporte"
	SectionConfiguracoes = "configuracoes"
)

// Section contenido a mostrar para un identificador de sección.
type Section struct {
	ID          string
	Title       string
	Description string
	Placeholder bool // sin funcionalidad, solo título y descripción
	Products    bool // listado y gestión de productos
}

// MenuItem entrada del menú lateral.
type MenuItem struct {
	ID    string
	Label string
}

// MenuGroup grupo de entradas del menú lateral.
type MenuGroup struct {
	Title string
	Items []MenuItem
}

var placeholders = map[string]Section{
	SectionSintese:       {Title: "Síntese", Description: "Esta seção permite visualizar sínteses e relatórios."},
	SectionFichaTecnica:  {Title: "Ficha Técnica", Description: "Esta seção permite gerenciar fichas técnicas."},
	SectionIntegracoes:   {Title: "Integrações", Description: "Esta seção permite configurar integrações com sistemas externos."},
	SectionAprendizado:   {Title: "Aprendizado", Description: "Esta seção contém materiais de treinamento e documentação."},
	SectionSuporte:       {Title: "Suporte", Description: "Esta seção permite acessar suporte técnico e documentação."},
	SectionConfiguracoes: {Title: "Configurações", Description: "Esta seção permite configurar o sistema."},
}

// SectionFor resuelve una sección; un id desconocido cae en el dashboard.
func SectionFor(id string) Section {
	switch id {
	case SectionProdutos, SectionCadastramento:
		return Section{ID: id, Title: "Cadastramento", Products: true}
	case SectionDashboard:
		return Section{ID: SectionDashboard, Title: "Dashboard"}
	}
	if s, ok := placeholders[id]; ok {
		s.ID = id
		s.Placeholder = true
		return s
	}
	return Section{ID: SectionDashboard, Title: "Dashboard"}
}

// Sidebar grupos del menú lateral.
func Sidebar() []MenuGroup {
	return []MenuGroup{
		{
			Title: "Funcionalidades",
			Items: []MenuItem{
				{ID: SectionDashboard, Label: "Dashboard"},
				{ID: SectionCadastramento, Label: "Cadastramento"},
				{ID: SectionSintese, Label: "Síntese"},
				{ID: SectionFichaTecnica, Label: "Ficha Técnica"},
			},
		},
		{
			Title: "Mini Estratégias",
			Items: []MenuItem{
				{ID: SectionIntegracoes, Label: "Integrações"},
				{ID: SectionAprendizado, Label: "Aprendizado"},
				{ID: SectionSuporte, Label: "Suporte"},
				{ID: SectionConfiguracoes, Label: "Configurações"},
			},
		},
	}
}
