package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-funeraria/internal/application/ledger"
	"github.com/jhoicas/inventario-funeraria/internal/domain"
	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
	"github.com/jhoicas/inventario-funeraria/internal/domain/inventory"
)

func TestEvaluateReorderStatus(t *testing.T) {
	f := newFixture(t, ledger.DefaultOptions())
	monitor := ledger.NewReorderMonitorUseCase(f.store.Products(), f.store.Projections())

	// Sin movimientos: stock 0 queda bajo el nivel de reorden (5).
	status, err := monitor.EvaluateReorderStatus(testProductID, testBranch)
	require.NoError(t, err)
	assert.Equal(t, inventory.ReorderStatusBelowReorderLevel, status.Status)
	assert.Zero(t, status.CurrentStock)

	// Tras una recepción grande, vuelve a OK.
	f.appendIN(t, 20, "Recepción")
	status, err = monitor.EvaluateReorderStatus(testProductID, testBranch)
	require.NoError(t, err)
	assert.Equal(t, inventory.ReorderStatusOK, status.Status)
	assert.Equal(t, int64(20), status.CurrentStock)

	// Producto inexistente.
	_, err = monitor.EvaluateReorderStatus("PRD-9999", testBranch)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Parámetros vacíos.
	_, err = monitor.EvaluateReorderStatus("", testBranch)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListBelowReorderLevel(t *testing.T) {
	f := newFixture(t, ledger.DefaultOptions())
	monitor := ledger.NewReorderMonitorUseCase(f.store.Products(), f.store.Projections())

	require.NoError(t, f.store.Products().Create(&entity.Product{
		ID:              "PRD-0002",
		SKU:             "SKU-URNA-002",
		Name:            "Urna de cerámica",
		Unit:            entity.UnitEach,
		ReorderLevel:    10,
		ReorderQuantity: 30,
	}))

	// PRD-0001 queda en 4 (nivel 5, déficit 1); PRD-0002 queda en 2 (nivel 10,
	// déficit 8) y debe salir primero.
	f.appendIN(t, 4, "Recepción corta")
	_, err := f.appendUC.AppendMovement(context.Background(), ledger.MovementInput{
		ProductID:    "PRD-0002",
		Branch:       testBranch,
		MovementType: entity.MovementTypePurchaseReceipt,
		Direction:    entity.DirectionIN,
		Quantity:     2,
		Reason:       "Recepción corta",
	})
	require.NoError(t, err)

	suggestions, err := monitor.ListBelowReorderLevel(testBranch)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	assert.Equal(t, "PRD-0002", suggestions[0].ProductID, "mayor déficit primero")
	assert.Equal(t, 1, suggestions[0].Priority)
	assert.Equal(t, int64(30), suggestions[0].SuggestedOrderQty, "usa la cantidad de reorden del catálogo")

	assert.Equal(t, testProductID, suggestions[1].ProductID)
	assert.Equal(t, int64(1), suggestions[1].SuggestedOrderQty, "sin cantidad configurada, sugiere el déficit")
}
