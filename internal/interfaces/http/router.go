package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmasync-api/internal/application/agent"
	"github.com/jhoicas/farmasync-api/internal/application/dto"
	"github.com/jhoicas/farmasync-api/internal/application/usecase"
	"github.com/jhoicas/farmasync-api/internal/application/wizard"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

// AgentDeps dependencias del servicio del agente.
type AgentDeps struct {
	Service string
	Wizard  *wizard.UseCase
	Direct  *wizard.DirectUseCase
	Query   *agent.QueryUseCase
}

// InventoryDeps dependencias del microservicio de inventario.
type InventoryDeps struct {
	Service  string
	Products *usecase.ProductUseCase
	Sheet    SheetGenerator
}

// AgentRouter registra las rutas del agente: asistentes, atajos de administración y /query.
func AgentRouter(app *fiber.App, deps AgentDeps) {
	app.Get("/health", health(deps.Service))

	admin := app.Group("/admin")

	sessions := NewSessionHandler(deps.Wizard)
	productSession := admin.Group("/product-session")
	productSession.Post("/start", sessions.Start(entity.SessionKindProduct))
	productSession.Post("/:id/continue", sessions.Continue(entity.SessionKindProduct))

	userSession := admin.Group("/user-session")
	userSession.Post("/start", sessions.Start(entity.SessionKindUser))
	userSession.Post("/:id/continue", sessions.Continue(entity.SessionKindUser))

	admin.Get("/sessions/:id", sessions.Get)

	direct := NewAdminHandler(deps.Direct)
	admin.Post("/product/create", direct.CreateProduct)
	admin.Post("/user/create", direct.CreateUser)

	query := NewQueryHandler(deps.Query)
	app.Post("/query", query.Query)
}

// InventoryRouter registra las rutas del inventario en /api/products y, con los nombres
// de la versión anterior del servicio, en /farmasync/inventario.
func InventoryRouter(app *fiber.App, deps InventoryDeps) {
	app.Get("/health", health(deps.Service))

	h := NewProductHandler(deps.Products, deps.Sheet)

	products := app.Group("/api/products")
	products.Get("/", h.List)
	products.Get("/search", h.Search)
	products.Post("/", h.Create)
	products.Get("/:id", h.GetByID)
	products.Put("/:id", h.Update)
	products.Patch("/:id/price", h.UpdatePrice)
	products.Delete("/:id", h.Delete)
	products.Post("/:id/stock-in", h.StockIn)
	products.Post("/:id/stock-out", h.StockOut)
	products.Get("/:id/movements", h.Movements)
	products.Get("/:id/sheet.pdf", h.Sheet)

	legacy := app.Group("/farmasync/inventario")
	legacy.Get("/", h.ListAll)
	legacy.Get("/buscar", h.Search)
	legacy.Post("/", h.Create)
	legacy.Get("/:id", h.GetByID)
	legacy.Put("/:id", h.Update)
	legacy.Patch("/:id/precio", h.UpdatePrice)
	legacy.Delete("/:id", h.Delete)
	legacy.Post("/:id/entrada", h.StockIn)
	legacy.Post("/:id/salida", h.StockOut)
}

func health(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: service})
	}
}
