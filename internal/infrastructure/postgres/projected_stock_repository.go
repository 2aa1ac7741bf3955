package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
	"github.com/jhoicas/inventario-funeraria/internal/domain/repository"
)

var _ repository.ProjectedStockRepository = (*ProjectedStockRepo)(nil)

// ProjectedStockRepo implementación de ProjectedStockRepository sobre PostgreSQL
// (usable con pool o tx).
type ProjectedStockRepo struct {
	q Querier
}

// NewProjectedStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectedStockRepository(q Querier) *ProjectedStockRepo {
	return &ProjectedStockRepo{q: q}
}

// Get obtiene el stock proyectado de (producto, sede). Sin fila = stock 0.
func (r *ProjectedStockRepo) Get(productID, branch string) (*entity.ProjectedStock, error) {
	query := `
		SELECT product_id, branch, current_stock, last_sequence_id, updated_at
		FROM projected_stock WHERE product_id = $1 AND branch = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, branch), productID, branch, "get projected stock")
}

// GetForUpdate obtiene la proyección y bloquea la fila (SELECT FOR UPDATE).
// Serializa los appends concurrentes del mismo (producto, sede).
func (r *ProjectedStockRepo) GetForUpdate(productID, branch string) (*entity.ProjectedStock, error) {
	query := `
		SELECT product_id, branch, current_stock, last_sequence_id, updated_at
		FROM projected_stock WHERE product_id = $1 AND branch = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, branch), productID, branch, "get projected stock for update")
}

// Upsert inserta o actualiza la proyección de (producto, sede).
func (r *ProjectedStockRepo) Upsert(stock *entity.ProjectedStock) error {
	query := `
		INSERT INTO projected_stock (product_id, branch, current_stock, last_sequence_id, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, branch)
		DO UPDATE SET current_stock = EXCLUDED.current_stock,
		              last_sequence_id = EXCLUDED.last_sequence_id,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.Branch, stock.CurrentStock, stock.LastSequenceID)
	if err != nil {
		return fmt.Errorf("upsert projected stock: %w", err)
	}
	return nil
}

// ListBelowReorderLevel productos bajo su nivel de reorden, mayor déficit primero.
func (r *ProjectedStockRepo) ListBelowReorderLevel(branch string) ([]repository.ReorderItem, error) {
	query := `
		SELECT p.product_id, p.sku, p.name, ps.branch, ps.current_stock, p.reorder_level
		FROM projected_stock ps
		JOIN products p ON p.product_id = ps.product_id
		WHERE ps.current_stock < p.reorder_level`
	args := []any{}
	if branch != "" {
		query += " AND ps.branch = $1"
		args = append(args, branch)
	}
	query += " ORDER BY (p.reorder_level - ps.current_stock) DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list below reorder level: %w", err)
	}
	defer rows.Close()

	var items []repository.ReorderItem
	for rows.Next() {
		var it repository.ReorderItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.Branch,
			&it.CurrentStock, &it.ReorderLevel); err != nil {
			return nil, fmt.Errorf("scan reorder item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *ProjectedStockRepo) scanOne(row pgx.Row, productID, branch, op string) (*entity.ProjectedStock, error) {
	var s entity.ProjectedStock
	err := row.Scan(&s.ProductID, &s.Branch, &s.CurrentStock, &s.LastSequenceID, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Sin movimientos todavía: proyección en cero.
			return &entity.ProjectedStock{ProductID: productID, Branch: branch}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
