package ports

import (
	"context"

	"github.com/jhoicas/farmasync-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, con los repositorios del inventario atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
	) error) error
}
