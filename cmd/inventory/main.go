package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/farmasync-api/internal/application/ports"
	"github.com/jhoicas/farmasync-api/internal/application/usecase"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
	"github.com/jhoicas/farmasync-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/farmasync-api/internal/infrastructure/pdf"
	"github.com/jhoicas/farmasync-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/farmasync-api/internal/interfaces/http"
	"github.com/jhoicas/farmasync-api/pkg/config"
	"github.com/jhoicas/farmasync-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name + "-inventory",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando inventario")

	ctx := context.Background()
	var (
		productRepo  repository.ProductRepository
		movementRepo repository.StockMovementRepository
		txRunner     ports.TxRunner
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		products := memory.NewProductRepository()
		movements := memory.NewStockMovementRepository()
		productRepo, movementRepo = products, movements
		txRunner = memory.NewTxRunner(products, movements)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		// Tabla propia: el agente y el inventario pueden compartir base sin pisarse.
		productRepo = postgres.NewProductRepository(pool, postgres.TableInventoryProducts)
		movementRepo = postgres.NewStockMovementRepository(pool)
		txRunner = postgres.NewTxRunner(pool, postgres.TableInventoryProducts)
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name + "-inventory",
		CORSOrigins: cfg.HTTP.CORSOrigins,
		DocsFile:    "./docs/inventory.json",
		DocsTitle:   "FarmaSync Inventario API",
	})
	httpRouter.InventoryRouter(app, httpRouter.InventoryDeps{
		Service:  cfg.App.Name + "-inventory",
		Products: usecase.NewProductUseCase(productRepo, movementRepo, txRunner),
		Sheet:    infrapdf.NewProductSheetGenerator(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.InventoryAddr()); err != nil {
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

	log.Info().Msg("inventario detenido")
}
