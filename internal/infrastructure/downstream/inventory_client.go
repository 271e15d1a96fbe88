package downstream

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jhoicas/farmasync-api/internal/application/ports"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

var _ ports.InventoryMirror = (*InventoryClient)(nil)

const inventoryService = "inventario"

// inventoryProduct formato de producto que acepta el microservicio de inventario.
type inventoryProduct struct {
	Nombre      string      `json:"nombre"`
	Descripcion string      `json:"descripcion"`
	Precio      json.Number `json:"precio"`
	Stock       int         `json:"stock"`
	ProvedorID  string      `json:"provedor_id"`
	ImagenURL   string      `json:"imagen_url"`
}

// InventoryClient publica productos en el microservicio de inventario.
type InventoryClient struct {
	url        string
	httpClient *http.Client
}

// NewInventoryClient construye el cliente. url es el endpoint completo de creación de productos.
// El timeout lo impone el llamador vía contexto; timeout aquí es solo la cota del transporte.
func NewInventoryClient(url string, timeout time.Duration) *InventoryClient {
	return &InventoryClient{url: url, httpClient: &http.Client{Timeout: timeout}}
}

// PublishProduct envía el producto. Un cuerpo 2xx que no sea JSON se devuelve como string JSON.
func (c *InventoryClient) PublishProduct(ctx context.Context, p *entity.Product) (json.RawMessage, error) {
	raw, err := postJSON(ctx, c.httpClient, inventoryService, c.url, inventoryProduct{
		Nombre:      p.Name,
		Descripcion: p.Description,
		Precio:      json.Number(p.Price.String()),
		Stock:       p.Stock,
		ProvedorID:  p.SupplierID,
		ImagenURL:   p.ImageURL,
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(raw) {
		quoted, _ := json.Marshal(string(raw))
		return quoted, nil
	}
	return raw, nil
}
