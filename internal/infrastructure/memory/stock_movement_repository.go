package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo kárdex en memoria, solo de inserción.
type StockMovementRepo struct {
	mu    sync.RWMutex
	items []entity.StockMovement
}

// NewStockMovementRepository construye el kárdex vacío.
func NewStockMovementRepository() *StockMovementRepo {
	return &StockMovementRepo{}
}

func (r *StockMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *movement)
	return nil
}

// ListByProduct recorre en orden inverso de inserción, que es el orden cronológico inverso.
func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*entity.StockMovement{}
	skipped := 0
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].ProductID != productID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		m := r.items[i]
		out = append(out, &m)
	}
	return out, nil
}
