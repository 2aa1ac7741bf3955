// Herramienta de operación: reconstruye la proyección de stock de un
// (producto, sede) replegando el ledger completo. Si el replay no coincide
// con lo almacenado termina con código distinto de cero y la proyección
// anterior queda intacta.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/inventario-funeraria/internal/application/ledger"
	"github.com/jhoicas/inventario-funeraria/internal/domain"
	"github.com/jhoicas/inventario-funeraria/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-funeraria/pkg/config"
	"github.com/jhoicas/inventario-funeraria/pkg/logger"
)

func main() {
	productID := flag.String("product-id", "", "Requerido: product_id a reconstruir")
	branch := flag.String("branch", "", "Requerido: sede a reconstruir")
	flag.Parse()

	if *productID == "" || *branch == "" {
		fmt.Fprintln(os.Stderr, "--product-id y --branch son requeridos")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	projector := ledger.NewStockProjectorUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewStockMovementRepository(pool),
		postgres.NewProjectedStockRepository(pool),
		log,
	)

	proj, err := projector.Rebuild(ctx, *productID, *branch)
	if err != nil {
		if errors.Is(err, domain.ErrReplayMismatch) {
			log.Error().
				Str("product_id", *productID).
				Str("branch", *branch).
				Msg("replay no coincide: el ledger requiere revisión manual; la proyección no fue tocada")
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("rebuild")
	}

	log.Info().
		Str("product_id", proj.ProductID).
		Str("branch", proj.Branch).
		Int64("current_stock", proj.CurrentStock).
		Int64("last_sequence_id", proj.LastSequenceID).
		Msg("proyección reconstruida")
}
