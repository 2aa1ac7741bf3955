package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
	"github.com/jhoicas/inventario-funeraria/internal/domain/inventory"
)

func int64Ptr(v int64) *int64 { return &v }

func TestClassifyReorderStatus(t *testing.T) {
	cases := []struct {
		name     string
		product  *entity.Product
		stock    int64
		expected string
	}{
		{
			"stock holgado",
			&entity.Product{ReorderLevel: 5},
			20,
			inventory.ReorderStatusOK,
		},
		{
			"exactamente en el nivel de reorden",
			&entity.Product{ReorderLevel: 5},
			5,
			inventory.ReorderStatusOK,
		},
		{
			"bajo el nivel de reorden",
			&entity.Product{ReorderLevel: 5},
			4,
			inventory.ReorderStatusBelowReorderLevel,
		},
		{
			"bajo el mínimo",
			&entity.Product{ReorderLevel: 5, MinimumStock: int64Ptr(3)},
			2,
			inventory.ReorderStatusBelowMinimum,
		},
		{
			"bajo mínimo tiene precedencia sobre bajo reorden",
			&entity.Product{ReorderLevel: 10, MinimumStock: int64Ptr(8)},
			7,
			inventory.ReorderStatusBelowMinimum,
		},
		{
			"sobre el máximo",
			&entity.Product{ReorderLevel: 5, MaximumStock: int64Ptr(50)},
			51,
			inventory.ReorderStatusAboveMaximum,
		},
		{
			"exactamente en el máximo",
			&entity.Product{ReorderLevel: 5, MaximumStock: int64Ptr(50)},
			50,
			inventory.ReorderStatusOK,
		},
		{
			"sin umbrales opcionales configurados",
			&entity.Product{ReorderLevel: 0},
			0,
			inventory.ReorderStatusOK,
		},
		{
			"stock negativo cae bajo mínimo",
			&entity.Product{ReorderLevel: 5, MinimumStock: int64Ptr(0)},
			-2,
			inventory.ReorderStatusBelowMinimum,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, inventory.ClassifyReorderStatus(tc.product, tc.stock))
		})
	}
}

func TestSuggestedOrderQuantity(t *testing.T) {
	// Con cantidad de reorden configurada, se sugiere esa cantidad.
	p := &entity.Product{ReorderLevel: 10, ReorderQuantity: 25}
	assert.Equal(t, int64(25), inventory.SuggestedOrderQuantity(p, 4))

	// Sin cantidad configurada, se sugiere el déficit contra el nivel.
	p = &entity.Product{ReorderLevel: 10}
	assert.Equal(t, int64(6), inventory.SuggestedOrderQuantity(p, 4))

	// Stock suficiente: nada que pedir.
	assert.Zero(t, inventory.SuggestedOrderQuantity(p, 10))
}
