package entity

// Category categoría de productos con su faixa de frecuencia [RangeStart, RangeEnd].
// Vive solo en memoria durante la sesión de la aplicación.
type Category struct {
	ID         int    `json:"id"`
	Name       string `json:"nome"`
	RangeStart int    `json:"frequenciaInicio"`
	RangeEnd   int    `json:"frequenciaFim"`
}
