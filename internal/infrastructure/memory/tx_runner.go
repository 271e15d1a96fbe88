package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/farmasync-api/internal/application/ports"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner serializa los bloques transaccionales sobre el almacén en memoria.
// No hay rollback: fn debe fallar antes de escribir o dejar el almacén consistente.
type TxRunner struct {
	mu        sync.Mutex
	products  *ProductRepo
	movements *StockMovementRepo
}

// NewTxRunner construye el runner sobre los almacenes de productos y de movimientos.
func NewTxRunner(products *ProductRepo, movements *StockMovementRepo) *TxRunner {
	return &TxRunner{products: products, movements: movements}
}

func (r *TxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.products, r.movements)
}
