// Package wizard implementa la máquina de estados de las sesiones de captura paso a paso.
// Todas las entradas (rutas de administración, chat del agente) delegan aquí.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/farmasync-api/internal/application/dto"
	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
	"github.com/jhoicas/farmasync-api/internal/domain/session"
)

const canceledMessage = "Creación cancelada por el usuario."

// Committer confirma la entidad capturada. Lo implementa commit.Coordinator.
type Committer interface {
	CommitProduct(ctx context.Context, p *entity.Product) (*dto.ProductCommitResult, error)
	CommitUser(ctx context.Context, u *entity.User) (*dto.UserCommitResult, error)
}

// UseCase operaciones start y continue sobre sesiones persistidas.
// Las llamadas a continue de una misma sesión deben serializarse en el llamador.
type UseCase struct {
	sessions  repository.SessionRepository
	committer Committer
}

// NewUseCase construye el caso de uso.
func NewUseCase(sessions repository.SessionRepository, committer Committer) *UseCase {
	return &UseCase{sessions: sessions, committer: committer}
}

// Start crea una sesión del tipo indicado y devuelve la primera pregunta.
func (uc *UseCase) Start(ctx context.Context, kind entity.SessionKind) (*dto.StartSessionResponse, error) {
	flow, err := session.FlowFor(kind)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	first := flow.First()
	s := &entity.Session{
		ID:        uuid.New().String(),
		Kind:      kind,
		State:     map[string]string{},
		Step:      first.Step,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.sessions.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("crear sesión: %w", err)
	}
	log.Info().Str("session_id", s.ID).Str("kind", string(kind)).Msg("sesión iniciada")
	return &dto.StartSessionResponse{SessionID: s.ID, Question: first.Prompt}, nil
}

// Continue procesa la respuesta al paso actual de la sesión.
//
// Errores: ErrNotFound si la sesión no existe, ErrSessionCompleted si ya terminó, ErrInvalidStep si
// el paso persistido no pertenece a su secuencia, ErrCommitFailed (junto con la causa) si falla la
// confirmación; en este último caso también se devuelve la respuesta con OK=false.
// Una respuesta inválida no es un error: vuelve con OK=false y la misma pregunta, sin tocar la sesión.
func (uc *UseCase) Continue(ctx context.Context, id, answer string) (*dto.SessionStepResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.advance(ctx, s, answer)
}

// ContinueAs igual que Continue pero exige que la sesión sea del tipo indicado;
// una sesión de otro tipo se trata como inexistente.
func (uc *UseCase) ContinueAs(ctx context.Context, kind entity.SessionKind, id, answer string) (*dto.SessionStepResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Kind != kind {
		return nil, domain.ErrNotFound
	}
	return uc.advance(ctx, s, answer)
}

// Get devuelve la vista de auditoría de la sesión.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.SessionResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	state := s.CloneState()
	if _, ok := state[string(entity.StepPassword)]; ok {
		state[string(entity.StepPassword)] = "****"
	}
	return &dto.SessionResponse{
		ID:        s.ID,
		Kind:      string(s.Kind),
		State:     state,
		Step:      string(s.Step),
		Completed: s.Completed,
		Canceled:  s.Canceled,
		Error:     s.Error,
		Result:    s.Result,
		CreatedAt: s.CreatedAt,
	}, nil
}

func (uc *UseCase) load(ctx context.Context, id string) (*entity.Session, error) {
	s, err := uc.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (uc *UseCase) advance(ctx context.Context, s *entity.Session, answer string) (*dto.SessionStepResponse, error) {
	if s.Completed {
		return nil, domain.ErrSessionCompleted
	}
	flow, err := session.FlowFor(s.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidStep, err)
	}
	if s.Step == entity.StepCommitting {
		return nil, fmt.Errorf("%w: confirmación ya recibida", domain.ErrSessionCompleted)
	}
	if s.Step == entity.StepConfirm {
		return uc.confirm(ctx, s, answer)
	}
	field, ok := flow.Field(s.Step)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStep, s.Step)
	}

	value, err := field.Validate(answer)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			log.Debug().Str("session_id", s.ID).Str("step", string(s.Step)).Msg("respuesta rechazada")
			return &dto.SessionStepResponse{OK: false, Error: ve.Message, Question: field.RetryPrompt()}, nil
		}
		return nil, err
	}

	state := s.CloneState()
	state[string(field.Step)] = value
	next := flow.Next(field.Step)
	if err := uc.sessions.SaveProgress(ctx, s.ID, state, next); err != nil {
		return nil, fmt.Errorf("guardar progreso: %w", err)
	}
	log.Debug().Str("session_id", s.ID).Str("step", string(field.Step)).Str("next", string(next)).Msg("paso completado")

	question := ""
	if next == entity.StepConfirm {
		question = flow.Summary(state)
	} else {
		nextField, _ := flow.Field(next)
		question = nextField.Prompt
	}
	return &dto.SessionStepResponse{OK: true, Question: question}, nil
}

func (uc *UseCase) confirm(ctx context.Context, s *entity.Session, answer string) (*dto.SessionStepResponse, error) {
	if !session.IsAffirmative(answer) {
		if err := uc.sessions.Complete(ctx, s.ID, entity.SessionOutcome{Canceled: true}); err != nil {
			return nil, fmt.Errorf("cancelar sesión: %w", err)
		}
		log.Info().Str("session_id", s.ID).Msg("sesión cancelada")
		return &dto.SessionStepResponse{OK: true, Canceled: true, Message: canceledMessage}, nil
	}

	if err := uc.sessions.SaveProgress(ctx, s.ID, s.State, entity.StepCommitting); err != nil {
		return nil, fmt.Errorf("marcar confirmación: %w", err)
	}

	switch s.Kind {
	case entity.SessionKindProduct:
		return uc.confirmProduct(ctx, s)
	case entity.SessionKindUser:
		return uc.confirmUser(ctx, s)
	}
	return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidStep, s.Kind)
}

func (uc *UseCase) confirmProduct(ctx context.Context, s *entity.Session) (*dto.SessionStepResponse, error) {
	p, err := session.BuildProduct(s.State)
	if err != nil {
		return uc.fail(ctx, s, err)
	}
	res, err := uc.committer.CommitProduct(ctx, p)
	if err != nil {
		return uc.fail(ctx, s, err)
	}
	uc.succeed(ctx, s, res.Product.ID, map[string]any{"product": res.Product})
	return &dto.SessionStepResponse{
		OK:        true,
		Created:   true,
		Product:   &res.Product,
		Inventory: res.Inventory,
		CardHTML:  res.CardHTML,
	}, nil
}

func (uc *UseCase) confirmUser(ctx context.Context, s *entity.Session) (*dto.SessionStepResponse, error) {
	u, err := session.BuildUser(s.State)
	if err != nil {
		return uc.fail(ctx, s, err)
	}
	res, err := uc.committer.CommitUser(ctx, u)
	if err != nil {
		return uc.fail(ctx, s, err)
	}
	uc.succeed(ctx, s, res.User.ID, map[string]any{"user": res.User, "id": res.User.ID})
	return &dto.SessionStepResponse{OK: true, Created: true, User: &res.User}, nil
}

// succeed cierra la sesión con el resultado. La entidad ya existe: si el cierre falla solo se registra,
// y la sesión queda en StepCommitting sin admitir otra confirmación.
func (uc *UseCase) succeed(ctx context.Context, s *entity.Session, entityID string, result map[string]any) {
	raw, err := json.Marshal(result)
	if err == nil {
		err = uc.sessions.Complete(ctx, s.ID, entity.SessionOutcome{Result: raw})
	}
	if err != nil {
		log.Error().Err(err).
			Str("session_id", s.ID).
			Str("kind", string(s.Kind)).
			Str("entity_id", entityID).
			Msg("entidad creada pero la sesión no pudo cerrarse")
		return
	}
	log.Info().Str("session_id", s.ID).Str("kind", string(s.Kind)).Str("entity_id", entityID).Msg("sesión confirmada")
}

// fail registra el error en la sesión (terminal, sin reintento) y lo devuelve al llamador.
func (uc *UseCase) fail(ctx context.Context, s *entity.Session, cause error) (*dto.SessionStepResponse, error) {
	msg := cause.Error()
	if err := uc.sessions.Complete(ctx, s.ID, entity.SessionOutcome{Error: msg}); err != nil {
		log.Error().Err(err).Str("session_id", s.ID).Msg("no se pudo registrar el error de la sesión")
	}
	log.Error().Err(cause).Str("session_id", s.ID).Str("kind", string(s.Kind)).Msg("confirmación fallida")
	return &dto.SessionStepResponse{OK: false, Error: msg}, fmt.Errorf("%w: %w", domain.ErrCommitFailed, cause)
}
