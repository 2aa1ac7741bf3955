package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-funeraria/internal/application/catalog"
	"github.com/jhoicas/inventario-funeraria/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *catalog.ProductUseCase
	AppendUC    *ledger.AppendMovementUseCase
	ProjectorUC *ledger.StockProjectorUseCase
	ReorderUC   *ledger.ReorderMonitorUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de productos (referencia; el stock se mueve solo vía ledger)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Ledger de inventario
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AppendUC, deps.ProjectorUC, deps.ReorderUC)
	inv.Post("/movements", inventoryHandler.AppendMovement)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/movements/:id", inventoryHandler.GetMovement)
	inv.Get("/stock", inventoryHandler.GetCurrentStock)
	inv.Post("/stock/rebuild", inventoryHandler.Rebuild)
	inv.Get("/reorder-status", inventoryHandler.ReorderStatus)
	inv.Get("/reorder-list", inventoryHandler.ReorderList)
}
