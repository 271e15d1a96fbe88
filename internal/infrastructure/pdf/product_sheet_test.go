package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

func TestProductSheetGenerator_Generate(t *testing.T) {
	g := NewProductSheetGenerator()
	g.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC) }

	out, err := g.Generate(context.Background(), &entity.Product{
		ID:         "8f14e45f-ceea-4e6b-9b5b-0c1f2a3b4c5d",
		Name:       "Aspirin",
		Price:      decimal.RequireFromString("9.99"),
		Stock:      3,
		SupplierID: "SUP1",
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestNonEmptyAndFormatDate(t *testing.T) {
	assert.Equal(t, "-", nonEmpty("", "-"))
	assert.Equal(t, "x", nonEmpty("x", "-"))
	assert.Equal(t, "-", formatDate(time.Time{}))
}
