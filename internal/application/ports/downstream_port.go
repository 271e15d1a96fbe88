package ports

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

// InventoryMirror réplica best-effort de productos en el microservicio de inventario.
type InventoryMirror interface {
	// PublishProduct envía el producto y devuelve el cuerpo de la respuesta 2xx.
	PublishProduct(ctx context.Context, product *entity.Product) (json.RawMessage, error)
}

// AccountService servicio de cuentas, sistema de registro de usuarios.
type AccountService interface {
	// RegisterCustomer usa el endpoint de autorregistro (rol cliente por defecto) y devuelve el ID asignado.
	RegisterCustomer(ctx context.Context, user *entity.User) (string, error)
	// CreateWithRole usa el endpoint genérico de creación con el rol indicado.
	CreateWithRole(ctx context.Context, user *entity.User, roleID int) (string, error)
}

// DownstreamError fallo de transporte o respuesta no 2xx de un servicio externo.
type DownstreamError struct {
	Service string
	Status  int    // 0 si no hubo respuesta
	Body    string // cuerpo recibido, recortado
	Err     error  // error de transporte o de decodificación
}

func (e *DownstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d %s", e.Service, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

// Unwrap expone domain.ErrDownstream y la causa original.
func (e *DownstreamError) Unwrap() []error {
	if e.Err != nil {
		return []error{domain.ErrDownstream, e.Err}
	}
	return []error{domain.ErrDownstream}
}
