package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto en el inventario.
// Si ya existe un producto con el mismo nombre se suma el stock en lugar de duplicarlo.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	SupplierID  string          `json:"supplier_id"`
	ImageURL    string          `json:"image_url"`
}

// UnmarshalJSON acepta también los nombres de campo del servicio de inventario heredado
// (nombre, descripcion, precio, provedor_id, imagen_url), que es el formato que publica el agente.
func (r *CreateProductRequest) UnmarshalJSON(data []byte) error {
	var in struct {
		Name        string           `json:"name"`
		Nombre      string           `json:"nombre"`
		Description string           `json:"description"`
		Descripcion string           `json:"descripcion"`
		Price       *decimal.Decimal `json:"price"`
		Precio      *decimal.Decimal `json:"precio"`
		Stock       int              `json:"stock"`
		SupplierID  string           `json:"supplier_id"`
		ProvedorID  string           `json:"provedor_id"`
		ImageURL    string           `json:"image_url"`
		ImagenURL   string           `json:"imagen_url"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = CreateProductRequest{
		Name:        firstNonEmpty(in.Name, in.Nombre),
		Description: firstNonEmpty(in.Description, in.Descripcion),
		Stock:       in.Stock,
		SupplierID:  firstNonEmpty(in.SupplierID, in.ProvedorID),
		ImageURL:    firstNonEmpty(in.ImageURL, in.ImagenURL),
	}
	switch {
	case in.Price != nil:
		r.Price = *in.Price
	case in.Precio != nil:
		r.Price = *in.Precio
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// UpdateProductRequest reemplazo completo de un producto.
type UpdateProductRequest = CreateProductRequest

// UpdatePriceRequest entrada para PATCH /:id/price (o /:id/precio con {"precio"}).
type UpdatePriceRequest struct {
	Price  *decimal.Decimal `json:"price"`
	Precio *decimal.Decimal `json:"precio"`
}

// Value precio recibido; cero si no vino ninguno de los dos campos.
func (r UpdatePriceRequest) Value() decimal.Decimal {
	switch {
	case r.Price != nil:
		return *r.Price
	case r.Precio != nil:
		return *r.Precio
	}
	return decimal.Zero
}

// StockMovementRequest entrada/salida de stock. La ruta heredada envía {"cantidad"}.
type StockMovementRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
	Cantidad int `json:"cantidad"`
}

// Amount cantidad del movimiento.
func (r StockMovementRequest) Amount() int {
	if r.Quantity != 0 {
		return r.Quantity
	}
	return r.Cantidad
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	SupplierID  string          `json:"supplier_id"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AdminProductRequest formulario completo del atajo POST /admin/product/create.
// Price y Stock aceptan número o texto numérico; se validan con la misma tabla del asistente.
type AdminProductRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Stock       json.Number `json:"stock"`
	SupplierID  string      `json:"supplier_id"`
	ImageURL    string      `json:"image_url"`
}

// ProductCommitResult resultado de confirmar un producto: registro local, réplica en inventario y card.
type ProductCommitResult struct {
	Product   ProductResponse `json:"product"`
	Inventory json.RawMessage `json:"inventory"`
	CardHTML  string          `json:"cardHtml"`
}

// NewProductResponse mapea la entidad a su salida HTTP.
func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		SupplierID:  p.SupplierID,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// StockMovementResponse línea del kárdex.
type StockMovementResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Quantity   int       `json:"quantity"`
	StockAfter int       `json:"stock_after"`
	CreatedAt  time.Time `json:"created_at"`
}

// StockMovementListResponse kárdex paginado de un producto con su stock actual.
type StockMovementListResponse struct {
	ProductID string                  `json:"product_id"`
	Stock     int                     `json:"stock"`
	Items     []StockMovementResponse `json:"items"`
	Page      PageResponse            `json:"page"`
}

// NewStockMovementResponse mapea la entidad a su salida HTTP.
func NewStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:         m.ID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		StockAfter: m.StockAfter,
		CreatedAt:  m.CreatedAt,
	}
}
