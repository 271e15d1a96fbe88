package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmasync-api/internal/application/dto"
	"github.com/jhoicas/farmasync-api/internal/application/usecase"
	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/infrastructure/memory"
)

func newProductUseCase() *usecase.ProductUseCase {
	products := memory.NewProductRepository()
	movements := memory.NewStockMovementRepository()
	return usecase.NewProductUseCase(products, movements, memory.NewTxRunner(products, movements))
}

func aspirin(stock int) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:       "Aspirin",
		Price:      decimal.RequireFromString("9.99"),
		Stock:      stock,
		SupplierID: "SUP1",
	}
}

func TestProductUseCase_CreateFusionaPorNombre(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()

	first, created, err := uc.Create(ctx, aspirin(10))
	require.NoError(t, err)
	assert.True(t, created)

	in := aspirin(5)
	in.Name = "  ASPIRIN "
	merged, created, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 15, merged.Stock)

	kardex, err := uc.Movements(ctx, first.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, kardex.Items, 2)
	assert.Equal(t, entity.MovementTypeIn, kardex.Items[0].Type)
	assert.Equal(t, 5, kardex.Items[0].Quantity)
	assert.Equal(t, entity.MovementTypeInitial, kardex.Items[1].Type)
}

func TestProductUseCase_CreateValida(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()

	cases := map[string]dto.CreateProductRequest{
		"sin nombre":     {Price: decimal.NewFromInt(1), Stock: 1},
		"precio cero":    {Name: "X", Stock: 1},
		"stock negativo": {Name: "X", Price: decimal.NewFromInt(1), Stock: -1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := uc.Create(ctx, in)
			var verr *domain.ValidationError
			assert.True(t, errors.As(err, &verr), "error: %v", err)
		})
	}
}

func TestProductUseCase_StockOutInsuficienteNoRegistra(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	p, _, err := uc.Create(ctx, aspirin(3))
	require.NoError(t, err)

	_, err = uc.StockOut(ctx, p.ID, 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	out, err := uc.StockOut(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Stock)

	kardex, err := uc.Movements(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, kardex.Items, 2)
	assert.Equal(t, entity.MovementTypeOut, kardex.Items[0].Type)
	assert.Equal(t, -3, kardex.Items[0].Quantity)
	assert.Equal(t, 0, kardex.Items[0].StockAfter)
}

func TestProductUseCase_StockInCantidadInvalida(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	p, _, err := uc.Create(ctx, aspirin(1))
	require.NoError(t, err)

	_, err = uc.StockIn(ctx, p.ID, 0)
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))

	out, err := uc.StockIn(ctx, "no-existe", 2)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProductUseCase_UpdateRegistraAjuste(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	p, _, err := uc.Create(ctx, aspirin(10))
	require.NoError(t, err)

	in := aspirin(4)
	in.Name = "Aspirina"
	out, err := uc.Update(ctx, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Aspirina", out.Name)
	assert.Equal(t, 4, out.Stock)

	// mismo stock: sin línea nueva
	_, err = uc.Update(ctx, p.ID, in)
	require.NoError(t, err)

	kardex, err := uc.Movements(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, kardex.Items, 2)
	assert.Equal(t, entity.MovementTypeAdjust, kardex.Items[0].Type)
	assert.Equal(t, -6, kardex.Items[0].Quantity)

	missing, err := uc.Update(ctx, "no-existe", in)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductUseCase_MovementsPaginaYProductoInexistente(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	p, _, err := uc.Create(ctx, aspirin(1))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err := uc.StockIn(ctx, p.ID, 1)
		require.NoError(t, err)
	}

	page, err := uc.Movements(ctx, p.ID, 2, 3)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Items[0].StockAfter)
	assert.Equal(t, entity.MovementTypeInitial, page.Items[1].Type)
	assert.Equal(t, 5, page.Stock)

	none, err := uc.Movements(ctx, "no-existe", 10, 0)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestProductUseCase_UpdatePriceYDelete(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	p, _, err := uc.Create(ctx, aspirin(1))
	require.NoError(t, err)

	_, err = uc.UpdatePrice(ctx, p.ID, decimal.Zero)
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))

	out, err := uc.UpdatePrice(ctx, p.ID, decimal.RequireFromString("12.50"))
	require.NoError(t, err)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("12.5")))

	deleted, err := uc.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = uc.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
