package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un medicamento o artículo del inventario de la farmacia.
// El ID lo asigna el almacén al crear; Stock nunca es negativo.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta, > 0
	Stock       int
	SupplierID  string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
