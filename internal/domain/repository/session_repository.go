package repository

import (
	"context"

	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

// SessionRepository persistencia de sesiones de captura, indexadas por ID opaco.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	// SaveProgress actualiza solo state y step. Falla con ErrSessionCompleted si la sesión ya terminó.
	SaveProgress(ctx context.Context, id string, state map[string]string, step entity.Step) error
	// Complete marca la sesión como terminada con su anotación en una sola escritura.
	Complete(ctx context.Context, id string, outcome entity.SessionOutcome) error
}
