package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-funeraria/internal/domain"
	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
	"github.com/jhoicas/inventario-funeraria/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación append-only sobre PostgreSQL (usable con pool o tx).
// No hay UPDATE ni DELETE: el constraint único (product_id, branch, sequence_id)
// rechaza además cualquier secuencia duplicada.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `movement_id, sequence_id, product_id, branch, movement_type,
		direction, quantity, signed_delta, reason, stock_before, stock_after,
		purchase_order_ref, case_ref, notes, movement_date, created_at, created_by`

// Create persiste un movimiento confirmado del ledger.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.SequenceID, m.ProductID, m.Branch, m.Type, m.Direction,
		m.Quantity, m.SignedDelta, m.Reason, m.StockBefore, m.StockAfter,
		nullable(m.PurchaseOrderRef), nullable(m.CaseRef), nullable(m.Notes),
		m.MovementDate, m.CreatedAt, nullable(m.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Otro append ganó la misma secuencia: el caso de uso reintenta.
			return domain.ErrConflict
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por movement_id. Devuelve nil si no existe.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE movement_id = $1`
	var m entity.StockMovement
	if err := scanMovement(r.q.QueryRow(context.Background(), query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByProduct lista movimientos de un producto por SequenceID ascendente,
// con filtros opcionales de sede, tipo y rango de fechas.
func (r *StockMovementRepo) ListByProduct(productID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if filter.Branch != "" {
		query += fmt.Sprintf(" AND branch = $%d", pos)
		args = append(args, filter.Branch)
		pos++
	}
	if filter.MovementType != "" {
		query += fmt.Sprintf(" AND movement_type = $%d", pos)
		args = append(args, filter.MovementType)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND movement_date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND movement_date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += " ORDER BY branch, sequence_id ASC"
	// Limit <= 0 significa sin límite, igual que el backend en memoria.
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, filter.Limit)
		pos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", pos)
		args = append(args, filter.Offset)
	}

	return r.queryMovements(query, args...)
}

// ListForReplay devuelve todos los movimientos de (producto, sede) por
// SequenceID ascendente, sin paginación, para reconstruir la proyección.
func (r *StockMovementRepo) ListForReplay(productID, branch string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE product_id = $1 AND branch = $2
		ORDER BY sequence_id ASC`
	return r.queryMovements(query, productID, branch)
}

func (r *StockMovementRepo) queryMovements(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := scanMovement(rows, &m); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row, m *entity.StockMovement) error {
	var poRef, caseRef, notes, createdBy *string
	err := row.Scan(
		&m.ID, &m.SequenceID, &m.ProductID, &m.Branch, &m.Type, &m.Direction,
		&m.Quantity, &m.SignedDelta, &m.Reason, &m.StockBefore, &m.StockAfter,
		&poRef, &caseRef, &notes, &m.MovementDate, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return err
	}
	if poRef != nil {
		m.PurchaseOrderRef = *poRef
	}
	if caseRef != nil {
		m.CaseRef = *caseRef
	}
	if notes != nil {
		m.Notes = *notes
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return nil
}

// nullable convierte "" en NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
