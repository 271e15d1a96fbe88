package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo almacén de sesiones en memoria.
type SessionRepo struct {
	mu    sync.RWMutex
	items map[string]*entity.Session
}

// NewSessionRepository construye el almacén vacío.
func NewSessionRepository() *SessionRepo {
	return &SessionRepo{items: make(map[string]*entity.Session)}
}

func (r *SessionRepo) Create(_ context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[s.ID]; ok {
		return domain.ErrDuplicate
	}
	r.items[s.ID] = cloneSession(s)
	return nil
}

func (r *SessionRepo) GetByID(_ context.Context, id string) (*entity.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneSession(s), nil
}

func (r *SessionRepo) SaveProgress(_ context.Context, id string, state map[string]string, step entity.Step) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if s.Completed {
		return domain.ErrSessionCompleted
	}
	s.State = make(map[string]string, len(state))
	for k, v := range state {
		s.State[k] = v
	}
	s.Step = step
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *SessionRepo) Complete(_ context.Context, id string, outcome entity.SessionOutcome) error {
	if !outcome.Valid() {
		return domain.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if s.Completed {
		return domain.ErrSessionCompleted
	}
	s.Apply(outcome)
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func cloneSession(s *entity.Session) *entity.Session {
	out := *s
	out.State = s.CloneState()
	if s.Result != nil {
		out.Result = append(json.RawMessage(nil), s.Result...)
	}
	return &out
}
