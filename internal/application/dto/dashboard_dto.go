package dto

import "github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Total      int              `json:"total"`
	Produtos   int              `json:"produtos"`
	Insumos    int              `json:"insumos"`
	Categorias int              `json:"categorias"`
	Recent     []entity.Produto `json:"recent"` // "Atividade Recente"
}
