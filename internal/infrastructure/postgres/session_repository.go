package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo sesiones de los asistentes; state y result se guardan como JSONB.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create inserta la sesión recién iniciada.
func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	state, err := json.Marshal(s.State)
	if err != nil {
		return fmt.Errorf("serializar estado: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO sessions (id, kind, state, step, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, false, $5, $6)`,
		s.ID, string(s.Kind), state, string(s.Step), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe o si id no tiene formato de UUID.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	if !validID(id) {
		return nil, nil
	}
	var (
		s         entity.Session
		kind      string
		step      string
		state     []byte
		errorText *string
		result    []byte
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, kind, state, step, completed, canceled, error, result, created_at, updated_at
		FROM sessions WHERE id = $1`, id).Scan(
		&s.ID, &kind, &state, &step, &s.Completed, &s.Canceled, &errorText, &result, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	s.Kind = entity.SessionKind(kind)
	s.Step = entity.Step(step)
	if err := json.Unmarshal(state, &s.State); err != nil {
		return nil, fmt.Errorf("deserializar estado: %w", err)
	}
	if s.State == nil {
		s.State = map[string]string{}
	}
	if errorText != nil {
		s.Error = *errorText
	}
	if len(result) > 0 {
		s.Result = json.RawMessage(result)
	}
	return &s, nil
}

// SaveProgress actualiza state y step solo si la sesión sigue abierta.
func (r *SessionRepo) SaveProgress(ctx context.Context, id string, state map[string]string, step entity.Step) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("serializar estado: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE sessions SET state = $2, step = $3, updated_at = now()
		WHERE id = $1 AND NOT completed`,
		id, raw, string(step),
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrCompleted(ctx, id)
	}
	return nil
}

// Complete registra la anotación terminal y completed=true en la misma sentencia.
func (r *SessionRepo) Complete(ctx context.Context, id string, outcome entity.SessionOutcome) error {
	if !outcome.Valid() {
		return fmt.Errorf("%w: anotación terminal inválida", domain.ErrInvalidInput)
	}
	var (
		errorText *string
		result    []byte
	)
	if outcome.Error != "" {
		errorText = &outcome.Error
	}
	if len(outcome.Result) > 0 {
		result = outcome.Result
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE sessions SET completed = true, canceled = $2, error = $3, result = $4, updated_at = now()
		WHERE id = $1 AND NOT completed`,
		id, outcome.Canceled, errorText, result,
	)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrCompleted(ctx, id)
	}
	return nil
}

func (r *SessionRepo) missingOrCompleted(ctx context.Context, id string) error {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return domain.ErrSessionCompleted
}
