package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeInitial = "INITIAL" // alta del producto con stock inicial
	MovementTypeIn      = "IN"      // entrada (incluye altas repetidas que suman stock)
	MovementTypeOut     = "OUT"     // salida
	MovementTypeAdjust  = "ADJUST"  // reemplazo del stock al actualizar el producto
)

// StockMovement línea del kárdex de un producto del inventario.
type StockMovement struct {
	ID         string
	ProductID  string
	Type       string
	Quantity   int // con signo: negativo en salidas y ajustes a la baja
	StockAfter int
	CreatedAt  time.Time
}
