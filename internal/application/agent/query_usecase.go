package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/farmasync-api/internal/application/dto"
	"github.com/jhoicas/farmasync-api/internal/application/ports"
	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
)

const (
	llmTimeout   = 10 * time.Second
	catalogLimit = 50
	pong         = "pong"
)

// Sessions operaciones de la máquina de estados que usa la puerta conversacional.
// Lo implementa wizard.UseCase.
type Sessions interface {
	Start(ctx context.Context, kind entity.SessionKind) (*dto.StartSessionResponse, error)
	ContinueAs(ctx context.Context, kind entity.SessionKind, id, answer string) (*dto.SessionStepResponse, error)
}

// QueryUseCase enruta una consulta del chat. El LLM es opcional: sin él (o sin credenciales)
// se responde con un acuse de recibo.
type QueryUseCase struct {
	sessions Sessions
	products repository.ProductRepository
	llm      ports.LLMService
}

// NewQueryUseCase construye el caso de uso. llm puede ser nil.
func NewQueryUseCase(sessions Sessions, products repository.ProductRepository, llm ports.LLMService) *QueryUseCase {
	return &QueryUseCase{sessions: sessions, products: products, llm: llm}
}

// Handle resuelve la consulta y devuelve el valor de "data" de la respuesta.
// Los errores de la máquina de estados (sesión inexistente, ya completada, commit fallido)
// se propagan para que el transporte los convierta en su código HTTP.
func (uc *QueryUseCase) Handle(ctx context.Context, raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, domain.NewValidationError("query", "El cuerpo debe ser un JSON con la clave 'query'")
	}

	if raw[0] == '{' {
		var cmd dto.SessionContinueCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return nil, domain.NewValidationError("query", "Objeto de consulta inválido")
		}
		return uc.continueSession(ctx, cmd)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		// números, listas, etc.: acuse de recibo con el valor tal cual
		return "Consulta recibida: " + string(raw), nil
	}
	return uc.handleText(ctx, text)
}

func (uc *QueryUseCase) continueSession(ctx context.Context, cmd dto.SessionContinueCommand) (any, error) {
	var kind entity.SessionKind
	switch {
	case cmd.UserSessionContinue:
		kind = entity.SessionKindUser
	case cmd.ProductSessionContinue:
		kind = entity.SessionKindProduct
	default:
		return nil, domain.NewValidationError("query", "Objeto de consulta sin acción reconocida")
	}
	if strings.TrimSpace(cmd.ID()) == "" {
		return nil, domain.NewValidationError("sessionId", "sessionId es requerido")
	}
	return uc.sessions.ContinueAs(ctx, kind, cmd.ID(), cmd.Answer)
}

func (uc *QueryUseCase) handleText(ctx context.Context, text string) (any, error) {
	intent := Classify(text)
	log.Debug().Str("intent", intent.String()).Msg("consulta clasificada")

	switch intent {
	case IntentPing:
		return pong, nil
	case IntentCreateUser:
		return uc.sessions.Start(ctx, entity.SessionKindUser)
	case IntentCreateProduct:
		return uc.sessions.Start(ctx, entity.SessionKindProduct)
	case IntentListProducts:
		list, err := uc.products.List(ctx, catalogLimit, 0)
		if err != nil {
			return nil, fmt.Errorf("listar productos: %w", err)
		}
		out := make([]dto.ProductResponse, 0, len(list))
		for _, p := range list {
			out = append(out, *dto.NewProductResponse(p))
		}
		return out, nil
	}
	return uc.answer(ctx, text), nil
}

// answer consulta al LLM; cualquier fallo degrada al acuse de recibo.
func (uc *QueryUseCase) answer(ctx context.Context, text string) string {
	echo := "Consulta recibida: " + text
	if uc.llm == nil {
		return echo
	}
	catalog, err := uc.products.List(ctx, catalogLimit, 0)
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo leer el catálogo para el LLM")
		catalog = nil
	}

	llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()
	reply, err := uc.llm.Answer(llmCtx, text, catalog)
	if err != nil {
		if !errors.Is(err, domain.ErrConfiguration) {
			log.Warn().Err(err).Msg("LLM sin respuesta")
		}
		return echo
	}
	return reply
}
