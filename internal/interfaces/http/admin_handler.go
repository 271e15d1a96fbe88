package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmasync-api/internal/application/dto"
	"github.com/jhoicas/farmasync-api/internal/application/wizard"
)

// AdminHandler atajos de creación con el formulario completo, sin asistente.
type AdminHandler struct {
	uc *wizard.DirectUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *wizard.DirectUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// CreateProduct godoc
// @Summary      Crear producto en una sola petición
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminProductRequest  true  "Formulario completo"
// @Success      201   {object}  dto.ProductCommitResult
// @Failure      400   {object}  dto.FailureResponse
// @Failure      500   {object}  dto.FailureResponse
// @Router       /admin/product/create [post]
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.AdminProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailureResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.CreateProduct(c.UserContext(), in)
	if err != nil {
		return writeFailure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateUser godoc
// @Summary      Crear usuario (customer o supplier) en una sola petición
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminUserRequest  true  "Formulario completo"
// @Success      201   {object}  dto.UserCommitResult
// @Failure      400   {object}  dto.FailureResponse
// @Failure      500   {object}  dto.FailureResponse
// @Router       /admin/user/create [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.AdminUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailureResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.CreateUser(c.UserContext(), in)
	if err != nil {
		return writeFailure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
