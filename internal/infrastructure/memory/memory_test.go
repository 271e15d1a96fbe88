package memory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
)

func seedProduct(t *testing.T, repo *ProductRepo, id, name string, stock int, created time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.Product{
		ID: id, Name: name, Price: decimal.RequireFromString("1.50"), Stock: stock,
		SupplierID: "SUP1", CreatedAt: created, UpdatedAt: created,
	}))
}

func TestProductRepo_AdjustStock(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	seedProduct(t, repo, "p1", "Aspirina", 5, time.Now())

	p, err := repo.AdjustStock(ctx, "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Stock)

	_, err = repo.AdjustStock(ctx, "p1", -9)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Stock, "un descuento rechazado no modifica el stock")

	missing, err := repo.AdjustStock(ctx, "nope", 1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepo_SearchAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	base := time.Now()
	seedProduct(t, repo, "p1", "Ibuprofeno 400mg", 1, base)
	seedProduct(t, repo, "p2", "Paracetamol 500mg", 1, base.Add(time.Second))
	seedProduct(t, repo, "p3", "Ibuprofeno infantil", 1, base.Add(2*time.Second))

	found, err := repo.SearchByName(ctx, "IBUPRO")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Ibuprofeno 400mg", found[0].Name)

	byName, err := repo.GetByName(ctx, "paracetamol 500MG")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "p2", byName.ID)

	page, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "p3", page[0].ID)
	assert.Equal(t, "p2", page[1].ID)

	rest, err := repo.List(ctx, 2, 5)
	require.NoError(t, err)
	assert.Empty(t, rest)

	ok, err := repo.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionRepo_Lifecycle(t *testing.T) {
	ctx := context.Background()
	var repo repository.SessionRepository = NewSessionRepository()
	s := &entity.Session{ID: "s1", Kind: entity.SessionKindProduct, State: map[string]string{}, Step: entity.StepName}
	require.NoError(t, repo.Create(ctx, s))

	require.NoError(t, repo.SaveProgress(ctx, "s1", map[string]string{"name": "Aspirina"}, entity.StepDescription))
	got, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.StepDescription, got.Step)
	assert.Equal(t, "Aspirina", got.State["name"])

	got.State["name"] = "mutado"
	again, _ := repo.GetByID(ctx, "s1")
	assert.Equal(t, "Aspirina", again.State["name"], "las lecturas devuelven copias")

	assert.ErrorIs(t, repo.Complete(ctx, "s1", entity.SessionOutcome{}), domain.ErrInvalidInput)
	require.NoError(t, repo.Complete(ctx, "s1", entity.SessionOutcome{Result: json.RawMessage(`{"ok":true}`)}))

	assert.ErrorIs(t, repo.SaveProgress(ctx, "s1", map[string]string{}, entity.StepPrice), domain.ErrSessionCompleted)
	assert.ErrorIs(t, repo.Complete(ctx, "s1", entity.SessionOutcome{Canceled: true}), domain.ErrSessionCompleted)

	done, _ := repo.GetByID(ctx, "s1")
	assert.True(t, done.Completed)
	assert.False(t, done.Canceled)
	assert.JSONEq(t, `{"ok":true}`, string(done.Result))
	assert.Equal(t, entity.StepDescription, done.Step)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStockMovementRepo_ListByProduct(t *testing.T) {
	ctx := context.Background()
	repo := NewStockMovementRepository()
	base := time.Now()
	for i, m := range []entity.StockMovement{
		{ID: "m1", ProductID: "p1", Type: entity.MovementTypeInitial, Quantity: 5, StockAfter: 5},
		{ID: "m2", ProductID: "p2", Type: entity.MovementTypeInitial, Quantity: 1, StockAfter: 1},
		{ID: "m3", ProductID: "p1", Type: entity.MovementTypeOut, Quantity: -2, StockAfter: 3},
		{ID: "m4", ProductID: "p1", Type: entity.MovementTypeIn, Quantity: 4, StockAfter: 7},
	} {
		m.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(ctx, &m))
	}

	all, err := repo.ListByProduct(ctx, "p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"m4", "m3", "m1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	page, err := repo.ListByProduct(ctx, "p1", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "m3", page[0].ID)

	none, err := repo.ListByProduct(ctx, "zz", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
