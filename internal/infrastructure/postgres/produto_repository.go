package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estrategicos-catalogo/internal/domain"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

const produtoColumns = `id, codigo, descricao, tipo, categoria, unidade, qtd_embalagem, custo_embalagem, custo_unitario, creator, created_at, updated_at`

// ProdutoRepo implementación del puerto ProdutoRepository sobre PostgreSQL (usable con pool o tx).
type ProdutoRepo struct {
	q        Querier
	lockRows bool // GetByID con FOR UPDATE (solo dentro de TxRunner)
}

// NewProdutoRepository construye el adaptador de persistencia para produtos. Pasar pool o tx (Querier).
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

// NextCode toma el siguiente valor de produtos_codigo_seq.
func (r *ProdutoRepo) NextCode(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('produtos_codigo_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("nextval codigo: %w", err)
	}
	return n, nil
}

// Create persiste un nuevo produto.
func (r *ProdutoRepo) Create(ctx context.Context, p *entity.Produto) error {
	query := `INSERT INTO produtos (` + produtoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Description, p.Type, p.Category, p.Unit,
		p.PackageQuantity, p.PackageCost, p.UnitCost, p.Creator, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código o id duplicado", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

// GetByID obtiene un produto por ID; nil, nil si no existe.
func (r *ProdutoRepo) GetByID(ctx context.Context, id string) (*entity.Produto, error) {
	query := `SELECT ` + produtoColumns + ` FROM produtos WHERE id = $1`
	if r.lockRows {
		query += ` FOR UPDATE`
	}
	p, err := scanProduto(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return p, nil
}

// Update reescribe los campos editables. codigo, creator y created_at no cambian.
func (r *ProdutoRepo) Update(ctx context.Context, p *entity.Produto) error {
	query := `
		UPDATE produtos SET descricao = $2, tipo = $3, categoria = $4, unidade = $5,
			qtd_embalagem = $6, custo_embalagem = $7, custo_unitario = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Description, p.Type, p.Category, p.Unit,
		p.PackageQuantity, p.PackageCost, p.UnitCost, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ordena por created_at; limit <= 0 sin límite.
func (r *ProdutoRepo) List(ctx context.Context, newestFirst bool, limit int) ([]*entity.Produto, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}
	query := `SELECT ` + produtoColumns + ` FROM produtos ORDER BY created_at ` + order + `, codigo ` + order
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Produto
	for rows.Next() {
		p, err := scanProduto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina por ID.
func (r *ProdutoRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduto(row pgx.Row) (*entity.Produto, error) {
	var p entity.Produto
	err := row.Scan(
		&p.ID, &p.Code, &p.Description, &p.Type, &p.Category, &p.Unit,
		&p.PackageQuantity, &p.PackageCost, &p.UnitCost, &p.Creator, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
