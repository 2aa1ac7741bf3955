package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/inventario-funeraria/internal/application/catalog"
	"github.com/jhoicas/inventario-funeraria/internal/application/ledger"
	"github.com/jhoicas/inventario-funeraria/internal/infrastructure/collaborators"
	"github.com/jhoicas/inventario-funeraria/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-funeraria/internal/interfaces/http"
	"github.com/jhoicas/inventario-funeraria/pkg/config"
	"github.com/jhoicas/inventario-funeraria/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	projectedRepo := postgres.NewProjectedStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	checker := collaborators.NewHTTPChecker(
		cfg.Collaborators.CasesBaseURL,
		cfg.Collaborators.PurchaseOrdersBaseURL,
		cfg.Collaborators.Timeout,
	)
	linker := ledger.NewReferenceLinker(checker)

	appendUC := ledger.NewAppendMovementUseCase(txRunner, productRepo, linker, ledger.Options{
		AllowNegativeStock: cfg.Inventory.AllowNegativeStock,
		MaxRetries:         cfg.Inventory.AppendMaxRetries,
	})
	projectorUC := ledger.NewStockProjectorUseCase(txRunner, movementRepo, projectedRepo, log)
	reorderUC := ledger.NewReorderMonitorUseCase(productRepo, projectedRepo)
	productUC := catalog.NewProductUseCase(productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Funeraria API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		AppendUC:    appendUC,
		ProjectorUC: projectorUC,
		ReorderUC:   reorderUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
