package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmasync-api/internal/application/dto"
	"github.com/jhoicas/farmasync-api/internal/application/wizard"
	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

// SessionHandler expone start/continue de los asistentes de producto y de usuario.
type SessionHandler struct {
	uc *wizard.UseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *wizard.UseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Start devuelve el handler de inicio para el tipo de sesión.
//
// @Summary      Iniciar asistente (producto o usuario)
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  dto.StartSessionResponse
// @Failure      500  {object}  dto.FailureResponse
// @Router       /admin/product-session/start [post]
// @Router       /admin/user-session/start [post]
func (h *SessionHandler) Start(kind entity.SessionKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.Start(c.UserContext(), kind)
		if err != nil {
			return writeFailure(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// Continue devuelve el handler que procesa la respuesta al paso actual.
// Una respuesta inválida es 200 con ok=false; un fallo al confirmar es 500 con ok=false.
//
// @Summary      Responder al paso actual
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.ContinueSessionRequest  true  "Respuesta"
// @Success      200   {object}  dto.SessionStepResponse
// @Failure      400   {object}  dto.FailureResponse
// @Failure      404   {object}  dto.FailureResponse
// @Failure      500   {object}  dto.SessionStepResponse
// @Router       /admin/product-session/{id}/continue [post]
// @Router       /admin/user-session/{id}/continue [post]
func (h *SessionHandler) Continue(kind entity.SessionKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.ContinueSessionRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FailureResponse{Error: "cuerpo inválido"})
		}
		out, err := h.uc.ContinueAs(c.UserContext(), kind, c.Params("id"), in.Answer)
		if err != nil {
			if errors.Is(err, domain.ErrCommitFailed) && out != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(out)
			}
			return writeFailure(c, err)
		}
		return c.JSON(out)
	}
}

// Get godoc
// @Summary      Documento de una sesión (auditoría, contraseña enmascarada)
// @Tags         sessions
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.FailureResponse
// @Router       /admin/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeFailure(c, err)
	}
	return c.JSON(out)
}
