package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-funeraria/internal/application/ledger"
	"github.com/jhoicas/inventario-funeraria/internal/domain"
	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
	"github.com/jhoicas/inventario-funeraria/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Lectura de stock y listado
// ──────────────────────────────────────────────────────────────────────────────

// Una clave sin movimientos responde stock 0, no error.
func TestGetCurrentStock_ClaveSinMovimientos(t *testing.T) {
	f := newFixture(t, ledger.DefaultOptions())

	proj, err := f.proj.GetCurrentStock(testProductID, "Sede sin historial")
	require.NoError(t, err)
	assert.Zero(t, proj.CurrentStock)
	assert.Zero(t, proj.LastSequenceID)
}

func TestListMovements_FiltrosYOrden(t *testing.T) {
	f := newFixture(t, ledger.DefaultOptions())
	f.appendIN(t, 10, "Recepción 1")
	f.appendIN(t, 5, "Recepción 2")
	_, err := f.appendUC.AppendMovement(context.Background(), ledger.MovementInput{
		ProductID:    testProductID,
		Branch:       testBranch,
		MovementType: entity.MovementTypeSaleUsage,
		Direction:    entity.DirectionOUT,
		Quantity:     2,
		Reason:       "Case CASE-001",
		CaseRef:      "CASE-001",
	})
	require.NoError(t, err)

	// Sin filtro de tipo: los tres, en orden de secuencia ascendente.
	all, err := f.proj.ListMovements(testProductID, repository.MovementFilter{Branch: testBranch})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].SequenceID < all[1].SequenceID && all[1].SequenceID < all[2].SequenceID)

	// Filtro por tipo.
	sales, err := f.proj.ListMovements(testProductID, repository.MovementFilter{
		Branch:       testBranch,
		MovementType: entity.MovementTypeSaleUsage,
	})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "CASE-001", sales[0].CaseRef)

	// Filtro por rango de fechas que excluye todo.
	past := time.Now().Add(-48 * time.Hour)
	old, err := f.proj.ListMovements(testProductID, repository.MovementFilter{
		Branch: testBranch,
		To:     &past,
	})
	require.NoError(t, err)
	assert.Empty(t, old)

	// Tipo de movimiento desconocido en el filtro.
	_, err = f.proj.ListMovements(testProductID, repository.MovementFilter{
		Branch:       testBranch,
		MovementType: "TELEPORT",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetMovement_PorID(t *testing.T) {
	f := newFixture(t, ledger.DefaultOptions())
	created := f.appendIN(t, 10, "Recepción")

	got, err := f.proj.GetMovement(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.SequenceID, got.SequenceID)
	assert.Equal(t, int64(10), got.StockAfter)

	_, err = f.proj.GetMovement("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.proj.GetMovement("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Limit <= 0 en el filtro significa sin límite: el listado completo.
func TestListMovements_SinLimite(t *testing.T) {
	f := newFixture(t, ledger.DefaultOptions())
	for i := 0; i < 4; i++ {
		f.appendIN(t, 1, "Recepción")
	}

	all, err := f.proj.ListMovements(testProductID, repository.MovementFilter{Branch: testBranch})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rebuild
// ──────────────────────────────────────────────────────────────────────────────

// Sobre un ledger íntegro el rebuild es idempotente: reproduce exactamente la
// proyección existente.
func TestRebuild_IdempotenteSobreLedgerIntegro(t *testing.T) {
	f := newFixture(t, ledger.DefaultOptions())
	f.appendIN(t, 20, "Recepción")
	_, err := f.appendUC.AppendMovement(context.Background(), ledger.MovementInput{
		ProductID:    testProductID,
		Branch:       testBranch,
		MovementType: entity.MovementTypeSaleUsage,
		Direction:    entity.DirectionOUT,
		Quantity:     6,
		Reason:       "Uso en caso",
	})
	require.NoError(t, err)

	before, err := f.proj.GetCurrentStock(testProductID, testBranch)
	require.NoError(t, err)

	rebuilt, err := f.proj.Rebuild(context.Background(), testProductID, testBranch)
	require.NoError(t, err)
	assert.Equal(t, before.CurrentStock, rebuilt.CurrentStock)
	assert.Equal(t, before.LastSequenceID, rebuilt.LastSequenceID)
}

// Un ledger vacío reconstruye a cero.
func TestRebuild_LedgerVacio(t *testing.T) {
	f := newFixture(t, ledger.DefaultOptions())

	rebuilt, err := f.proj.Rebuild(context.Background(), testProductID, testBranch)
	require.NoError(t, err)
	assert.Zero(t, rebuilt.CurrentStock)
	assert.Zero(t, rebuilt.LastSequenceID)
}

// Un ledger manipulado (stock_after inconsistente) aborta el rebuild con
// ErrReplayMismatch y deja la proyección intacta.
func TestRebuild_LedgerManipuladoAborta(t *testing.T) {
	f := newFixture(t, ledger.DefaultOptions())
	f.appendIN(t, 10, "Recepción")

	// Fila inyectada directamente al ledger rompiendo la cadena.
	tampered := &entity.StockMovement{
		ID:           "tampered-row",
		SequenceID:   2,
		ProductID:    testProductID,
		Branch:       testBranch,
		Type:         entity.MovementTypeStockAdjustment,
		Direction:    entity.DirectionIN,
		Quantity:     5,
		SignedDelta:  5,
		Reason:       "Ajuste manual",
		StockBefore:  10,
		StockAfter:   99, // inconsistente: debería ser 15
		MovementDate: time.Now(),
		CreatedAt:    time.Now(),
	}
	require.NoError(t, f.store.Movements().Create(tampered))

	_, err := f.proj.Rebuild(context.Background(), testProductID, testBranch)
	require.ErrorIs(t, err, domain.ErrReplayMismatch)

	// La proyección sigue reflejando el último estado confirmado.
	proj, err := f.proj.GetCurrentStock(testProductID, testBranch)
	require.NoError(t, err)
	assert.Equal(t, int64(10), proj.CurrentStock)
	assert.Equal(t, int64(1), proj.LastSequenceID)
}
