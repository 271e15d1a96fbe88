package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmasync-api/internal/application/agent"
	"github.com/jhoicas/farmasync-api/internal/application/dto"
	"github.com/jhoicas/farmasync-api/internal/domain"
)

// QueryHandler puerta conversacional del agente.
type QueryHandler struct {
	uc *agent.QueryUseCase
}

// NewQueryHandler construye el handler.
func NewQueryHandler(uc *agent.QueryUseCase) *QueryHandler {
	return &QueryHandler{uc: uc}
}

// Query godoc
// @Summary      Consulta en lenguaje natural o conducción de una sesión
// @Description  "ping" responde "pong". Frases de alta de usuario o de producto inician el asistente
// @Description  correspondiente. Un objeto {"user_session_continue": true, "sessionId", "answer"}
// @Description  (o product_session_continue) responde al paso actual. El resto se contesta con el LLM.
// @Tags         agent
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QueryRequest  true  "query: texto u objeto etiquetado"
// @Success      200   {object}  dto.QueryResponse
// @Failure      400   {object}  dto.FailureResponse
// @Failure      404   {object}  dto.FailureResponse
// @Failure      500   {object}  dto.QueryResponse
// @Router       /query [post]
func (h *QueryHandler) Query(c *fiber.Ctx) error {
	var in dto.QueryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailureResponse{Error: "El cuerpo debe ser un JSON con la clave 'query'"})
	}
	data, err := h.uc.Handle(c.UserContext(), in.Payload())
	if err != nil {
		if errors.Is(err, domain.ErrCommitFailed) && data != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.QueryResponse{Data: data})
		}
		return writeFailure(c, err)
	}
	return c.JSON(dto.QueryResponse{Data: data})
}

