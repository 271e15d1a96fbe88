package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/farmasync-api/internal/application/agent"
	"github.com/jhoicas/farmasync-api/internal/application/commit"
	"github.com/jhoicas/farmasync-api/internal/application/ports"
	"github.com/jhoicas/farmasync-api/internal/application/wizard"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
	infraai "github.com/jhoicas/farmasync-api/internal/infrastructure/ai"
	"github.com/jhoicas/farmasync-api/internal/infrastructure/downstream"
	"github.com/jhoicas/farmasync-api/internal/infrastructure/memory"
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
		Service: cfg.App.Name + "-agent",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando agente")

	ctx := context.Background()
	var (
		productRepo repository.ProductRepository
		sessionRepo repository.SessionRepository
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		productRepo = memory.NewProductRepository()
		sessionRepo = memory.NewSessionRepository()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		productRepo = postgres.NewProductRepository(pool, postgres.TableProducts)
		sessionRepo = postgres.NewSessionRepository(pool)
	}

	coordinator := commit.NewCoordinator(
		productRepo,
		downstream.NewInventoryClient(cfg.Inventory.URL, cfg.Inventory.Timeout),
		downstream.NewAccountClient(downstream.AccountConfig{
			BaseURL:      cfg.UserMS.URL,
			RegisterPath: cfg.UserMS.RegisterPath,
			UsersPath:    cfg.UserMS.UsersPath,
			Timeout:      cfg.UserMS.Timeout,
			JWTSecret:    cfg.UserMS.JWTSecret,
			JWTIssuer:    cfg.UserMS.JWTIssuer,
			JWTSubject:   cfg.UserMS.JWTSubject,
		}),
		commit.Config{
			InventoryTimeout: cfg.Inventory.Timeout,
			AccountTimeout:   cfg.UserMS.Timeout,
			SupplierRoleID:   cfg.UserMS.SupplierRoleID,
		},
	)
	if cfg.UserMS.SupplierRoleID == "" {
		log.Warn().Msg("USER_MS_SUPPLIER_ROLE_ID no configurado: la creación de proveedores fallará")
	}

	wizardUC := wizard.NewUseCase(sessionRepo, coordinator)
	queryUC := agent.NewQueryUseCase(wizardUC, productRepo, newLLM(cfg.LLM))

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name + "-agent",
		CORSOrigins: cfg.HTTP.CORSOrigins,
		DocsFile:    "./docs/swagger.json",
		DocsTitle:   "FarmaSync Agent API",
	})
	httpRouter.AgentRouter(app, httpRouter.AgentDeps{
		Service: cfg.App.Name + "-agent",
		Wizard:  wizardUC,
		Direct:  wizard.NewDirectUseCase(coordinator),
		Query:   queryUC,
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

	log.Info().Msg("agente detenido")
}

// newLLM elige el proveedor configurado. Sin API key devuelve nil y /query responde con acuse de recibo.
func newLLM(cfg config.LLMConfig) ports.LLMService {
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil
		}
		return infraai.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		if cfg.AnthropicAPIKey == "" {
			return nil
		}
		return infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
}
