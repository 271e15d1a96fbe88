package repository

import (
	"context"

	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

// StockMovementRepository puerto del kárdex de productos.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct devuelve los movimientos del más reciente al más antiguo.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
