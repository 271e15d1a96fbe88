package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

// AppConfig opciones comunes de los dos servicios HTTP.
type AppConfig struct {
	Name        string
	CORSOrigins string // lista separada por comas; "*" para cualquiera
	DocsFile    string // swagger.json; si no existe no se monta /docs
	DocsTitle   string
}

// NewApp crea la app Fiber con recover, CORS, log de peticiones y Swagger UI en /docs.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 20,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(RequestLogger())

	if cfg.DocsFile != "" {
		if _, err := os.Stat(cfg.DocsFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.DocsFile,
				Path:     "docs",
				Title:    cfg.DocsTitle,
			}))
		} else {
			log.Warn().Str("file", cfg.DocsFile).Msg("swagger no disponible")
		}
	}
	return app
}
