// Package commit materializa lo capturado por un asistente (o por un atajo de administración)
// en una entidad real y la replica en el servicio externo correspondiente.
//
// Productos: el almacén local es la fuente de verdad y el inventario es un espejo best-effort.
// Usuarios: el servicio de cuentas es el sistema de registro, su fallo hace fallar la creación.
package commit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/farmasync-api/internal/application/dto"
	"github.com/jhoicas/farmasync-api/internal/application/ports"
	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
)

const (
	defaultInventoryTimeout = 5 * time.Second
	defaultAccountTimeout   = 8 * time.Second
)

// Config parámetros operativos del coordinador.
type Config struct {
	InventoryTimeout time.Duration
	AccountTimeout   time.Duration
	// SupplierRoleID id numérico del rol proveedor en el servicio de cuentas, tal cual viene de la configuración.
	// Se interpreta al confirmar, no al arrancar.
	SupplierRoleID string
}

// Coordinator confirma productos y usuarios.
type Coordinator struct {
	products  repository.ProductRepository
	inventory ports.InventoryMirror
	accounts  ports.AccountService
	cfg       Config
}

// NewCoordinator construye el coordinador.
func NewCoordinator(
	products repository.ProductRepository,
	inventory ports.InventoryMirror,
	accounts ports.AccountService,
	cfg Config,
) *Coordinator {
	if cfg.InventoryTimeout <= 0 {
		cfg.InventoryTimeout = defaultInventoryTimeout
	}
	if cfg.AccountTimeout <= 0 {
		cfg.AccountTimeout = defaultAccountTimeout
	}
	return &Coordinator{products: products, inventory: inventory, accounts: accounts, cfg: cfg}
}

// CommitProduct persiste el producto (fallo fatal) y luego intenta replicarlo en inventario.
// Un fallo de la réplica queda como {"error": ...} en Inventory y no revierte nada.
func (c *Coordinator) CommitProduct(ctx context.Context, p *entity.Product) (*dto.ProductCommitResult, error) {
	now := time.Now()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := c.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("guardar producto: %w", err)
	}

	mirrorCtx, cancel := context.WithTimeout(ctx, c.cfg.InventoryTimeout)
	defer cancel()
	inventory, err := c.inventory.PublishProduct(mirrorCtx, p)
	if err != nil {
		log.Warn().Err(err).Str("product_id", p.ID).Msg("réplica en inventario fallida")
		inventory = mirrorFailure(err)
	}

	return &dto.ProductCommitResult{
		Product:   *dto.NewProductResponse(p),
		Inventory: inventory,
		CardHTML:  RenderProductCard(p),
	}, nil
}

// CommitUser crea el usuario en el servicio de cuentas. customer usa el autorregistro; supplier exige
// el id de rol configurado y usa el endpoint genérico.
func (c *Coordinator) CommitUser(ctx context.Context, u *entity.User) (*dto.UserCommitResult, error) {
	var roleID int
	switch u.AccountKind {
	case entity.AccountKindCustomer:
	case entity.AccountKindSupplier:
		id, err := c.supplierRoleID()
		if err != nil {
			return nil, err
		}
		roleID = id
	default:
		return nil, domain.NewValidationError(string(entity.StepAccountKind), `Tipo inválido. Debe ser "customer" o "supplier".`)
	}

	accCtx, cancel := context.WithTimeout(ctx, c.cfg.AccountTimeout)
	defer cancel()
	var (
		id  string
		err error
	)
	if u.AccountKind == entity.AccountKindCustomer {
		id, err = c.accounts.RegisterCustomer(accCtx, u)
	} else {
		id, err = c.accounts.CreateWithRole(accCtx, u, roleID)
	}
	if err != nil {
		log.Error().Err(err).Str("email", u.Email).Str("account_kind", u.AccountKind).Msg("creación en servicio de cuentas fallida")
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	u.ID = id
	return &dto.UserCommitResult{User: *dto.NewUserResponse(u)}, nil
}

func (c *Coordinator) supplierRoleID() (int, error) {
	raw := strings.TrimSpace(c.cfg.SupplierRoleID)
	if raw == "" {
		return 0, fmt.Errorf("%w: falta USER_MS_SUPPLIER_ROLE_ID; configura el id del rol de proveedor", domain.ErrConfiguration)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: USER_MS_SUPPLIER_ROLE_ID debe ser un entero válido", domain.ErrConfiguration)
	}
	return id, nil
}

// mirrorFailure convierte el error de la réplica en un valor estructurado para la respuesta.
func mirrorFailure(err error) json.RawMessage {
	out := map[string]any{"error": err.Error()}
	var de *ports.DownstreamError
	if errors.As(err, &de) {
		if de.Status != 0 {
			out["error"] = fmt.Sprintf("status %d", de.Status)
			out["status"] = de.Status
			out["body"] = de.Body
		} else if de.Err != nil {
			out["error"] = de.Err.Error()
		}
	}
	raw, _ := json.Marshal(out)
	return raw
}
