package session

import (
	"fmt"

	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

// BuildProduct arma el producto a partir de un estado completo de sesión de producto.
func BuildProduct(state map[string]string) (*entity.Product, error) {
	if err := requireKeys(productFlow, state); err != nil {
		return nil, err
	}
	price, err := ParsePrice(state[string(entity.StepPrice)])
	if err != nil {
		return nil, err
	}
	stock, err := ParseStock(state[string(entity.StepStock)])
	if err != nil {
		return nil, err
	}
	return &entity.Product{
		Name:        state[string(entity.StepName)],
		Description: state[string(entity.StepDescription)],
		Price:       price,
		Stock:       stock,
		SupplierID:  state[string(entity.StepSupplierID)],
		ImageURL:    state[string(entity.StepImageURL)],
	}, nil
}

// BuildUser arma el usuario a partir de un estado completo de sesión de usuario.
func BuildUser(state map[string]string) (*entity.User, error) {
	if err := requireKeys(userFlow, state); err != nil {
		return nil, err
	}
	kind, err := ParseAccountKind(state[string(entity.StepAccountKind)])
	if err != nil {
		return nil, err
	}
	return &entity.User{
		FirstName:   state[string(entity.StepName)],
		LastName:    state[string(entity.StepLastName)],
		Email:       state[string(entity.StepEmail)],
		Password:    state[string(entity.StepPassword)],
		Phone:       state[string(entity.StepPhone)],
		Address:     state[string(entity.StepAddress)],
		AccountKind: kind,
	}, nil
}

func requireKeys(f *Flow, state map[string]string) error {
	for _, fld := range f.Fields {
		if _, ok := state[string(fld.Step)]; !ok {
			return fmt.Errorf("%w: falta el campo %s", domain.ErrInvalidInput, fld.Step)
		}
	}
	return nil
}
