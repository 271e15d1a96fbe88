package repository

import (
	"context"

	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetByName devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	SearchByName(ctx context.Context, fragment string) ([]*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock suma delta al stock de forma atómica. Devuelve ErrInsufficientStock si quedaría negativo
	// y (nil, nil) si el producto no existe.
	AdjustStock(ctx context.Context, id string, delta int) (*entity.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}
