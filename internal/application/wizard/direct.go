package wizard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/farmasync-api/internal/application/dto"
	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/domain/session"
)

// DirectUseCase atajos de administración: el formulario completo en una sola petición.
// Usa la misma tabla de validación que el asistente y el mismo coordinador de confirmación.
type DirectUseCase struct {
	committer Committer
}

// NewDirectUseCase construye el caso de uso.
func NewDirectUseCase(committer Committer) *DirectUseCase {
	return &DirectUseCase{committer: committer}
}

// CreateProduct valida el formulario y confirma el producto.
// Un ValidationError se devuelve tal cual; un fallo del almacén se envuelve con ErrCommitFailed.
func (uc *DirectUseCase) CreateProduct(ctx context.Context, in dto.AdminProductRequest) (*dto.ProductCommitResult, error) {
	flow, _ := session.FlowFor(entity.SessionKindProduct)
	state, err := flow.ValidateAll(map[entity.Step]string{
		entity.StepName:        in.Name,
		entity.StepDescription: in.Description,
		entity.StepPrice:       in.Price.String(),
		entity.StepStock:       in.Stock.String(),
		entity.StepSupplierID:  in.SupplierID,
		entity.StepImageURL:    in.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	p, err := session.BuildProduct(state)
	if err != nil {
		return nil, err
	}
	res, err := uc.committer.CommitProduct(ctx, p)
	if err != nil {
		log.Error().Err(err).Str("name", p.Name).Msg("creación directa de producto fallida")
		return nil, fmt.Errorf("%w: %w", domain.ErrCommitFailed, err)
	}
	return res, nil
}

// CreateUser valida el formulario y crea el usuario en el servicio de cuentas.
func (uc *DirectUseCase) CreateUser(ctx context.Context, in dto.AdminUserRequest) (*dto.UserCommitResult, error) {
	flow, _ := session.FlowFor(entity.SessionKindUser)
	state, err := flow.ValidateAll(map[entity.Step]string{
		entity.StepName:        in.FirstName,
		entity.StepLastName:    in.LastName,
		entity.StepEmail:       in.Email,
		entity.StepPassword:    in.Password,
		entity.StepPhone:       in.Phone,
		entity.StepAddress:     in.Address,
		entity.StepAccountKind: in.AccountKind,
	})
	if err != nil {
		return nil, err
	}
	u, err := session.BuildUser(state)
	if err != nil {
		return nil, err
	}
	res, err := uc.committer.CommitUser(ctx, u)
	if err != nil {
		log.Error().Err(err).Str("email", u.Email).Msg("creación directa de usuario fallida")
		return nil, fmt.Errorf("%w: %w", domain.ErrCommitFailed, err)
	}
	return res, nil
}
