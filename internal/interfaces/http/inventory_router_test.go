package http_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmasync-api/internal/application/usecase"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/infrastructure/downstream"
	"github.com/jhoicas/farmasync-api/internal/infrastructure/memory"
	"github.com/jhoicas/farmasync-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/farmasync-api/internal/interfaces/http"
)

func newInventoryApp(t *testing.T) *fiber.App {
	t.Helper()
	products := memory.NewProductRepository()
	movements := memory.NewStockMovementRepository()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	apphttp.InventoryRouter(app, apphttp.InventoryDeps{
		Service:  "farmasync-inventory-test",
		Products: usecase.NewProductUseCase(products, movements, memory.NewTxRunner(products, movements)),
		Sheet:    pdf.NewProductSheetGenerator(),
	})
	return app
}

func createProduct(t *testing.T, app *fiber.App, body map[string]any) map[string]any {
	t.Helper()
	status, out := doJSON(t, app, http.MethodPost, "/api/products", body)
	require.Contains(t, []int{fiber.StatusCreated, fiber.StatusOK}, status, "cuerpo: %v", out)
	return out
}

func TestInventory_CrearYFusionarPorNombre(t *testing.T) {
	app := newInventoryApp(t)

	status, first := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Aspirin", "price": "9.99", "stock": 10, "supplier_id": "SUP1",
	})
	require.Equal(t, fiber.StatusCreated, status)
	id := first["id"].(string)

	status, merged := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "aspirin", "price": "9.99", "stock": 5, "supplier_id": "SUP1",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, id, merged["id"])
	assert.EqualValues(t, 15, merged["stock"])
}

func TestInventory_FormatoHeredado(t *testing.T) {
	app := newInventoryApp(t)

	status, created := doJSON(t, app, http.MethodPost, "/farmasync/inventario", map[string]any{
		"nombre": "Ibuprofeno", "descripcion": "400 mg", "precio": 12.5, "stock": 4, "provedor_id": "SUP2",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Ibuprofeno", created["name"])
	assert.Equal(t, "SUP2", created["supplier_id"])
	id := created["id"].(string)

	status, updated := doJSON(t, app, http.MethodPatch, "/farmasync/inventario/"+id+"/precio", map[string]any{"precio": 13})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "13", updated["price"])

	status, moved := doJSON(t, app, http.MethodPost, "/farmasync/inventario/"+id+"/salida", map[string]any{"cantidad": 3})
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, moved["stock"])

	status, found := doJSONList(t, app, http.MethodGet, "/farmasync/inventario/buscar?nombre=ibu", nil)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, found, 1)
	assert.Equal(t, "Ibuprofeno", found[0]["name"])

	status, all := doJSONList(t, app, http.MethodGet, "/farmasync/inventario", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, all, 1)
}

func TestInventory_ValidacionesYNoEncontrado(t *testing.T) {
	app := newInventoryApp(t)
	p := createProduct(t, app, map[string]any{"name": "Aspirin", "price": "9.99", "stock": 2, "supplier_id": "SUP1"})
	id := p["id"].(string)

	status, body := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"name": "X", "price": 0, "stock": 1})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, _ = doJSON(t, app, http.MethodPatch, "/api/products/"+id+"/price", map[string]any{"price": -1})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/products/"+id+"/stock-in", map[string]any{"quantity": 0})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/products/"+id+"/stock-out", map[string]any{"quantity": 3})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/products/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/products/search?name=zzz", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/products/search", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestInventory_ActualizarEliminarYListar(t *testing.T) {
	app := newInventoryApp(t)
	p := createProduct(t, app, map[string]any{"name": "Aspirin", "price": "9.99", "stock": 2, "supplier_id": "SUP1"})
	id := p["id"].(string)

	status, updated := doJSON(t, app, http.MethodPut, "/api/products/"+id, map[string]any{
		"name": "Aspirina", "price": "10.50", "stock": 7, "supplier_id": "SUP1",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Aspirina", updated["name"])

	_, page := doJSON(t, app, http.MethodGet, "/api/products?limit=500", nil)
	assert.Len(t, page["items"], 1)
	assert.EqualValues(t, 100, page["page"].(map[string]any)["limit"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/products/"+id, nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodDelete, "/api/products/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestInventory_Kardex(t *testing.T) {
	app := newInventoryApp(t)
	p := createProduct(t, app, map[string]any{"name": "Aspirin", "price": "9.99", "stock": 5, "supplier_id": "SUP1"})
	id := p["id"].(string)

	doJSON(t, app, http.MethodPost, "/api/products/"+id+"/stock-out", map[string]any{"quantity": 2})
	doJSON(t, app, http.MethodPost, "/api/products/"+id+"/stock-out", map[string]any{"quantity": 9})
	createProduct(t, app, map[string]any{"name": "ASPIRIN", "price": "9.99", "stock": 4, "supplier_id": "SUP1"})

	status, body := doJSON(t, app, http.MethodGet, "/api/products/"+id+"/movements", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 7, body["stock"])
	items := body["items"].([]any)
	require.Len(t, items, 3, "la salida rechazada no deja rastro")
	last := items[0].(map[string]any)
	assert.Equal(t, "IN", last["type"])
	assert.EqualValues(t, 7, last["stock_after"])
	first := items[2].(map[string]any)
	assert.Equal(t, "INITIAL", first["type"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/products/no-existe/movements", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestInventory_FichaPDF(t *testing.T) {
	app := newInventoryApp(t)
	p := createProduct(t, app, map[string]any{"name": "Aspirin", "price": "9.99", "stock": 2, "supplier_id": "SUP1"})

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+p["id"].(string)+"/sheet.pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

// El cliente de réplica del agente publica en el formato heredado y el inventario lo acepta.
func TestInventory_RecibeReplicaDelAgente(t *testing.T) {
	app := newInventoryApp(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	client := downstream.NewInventoryClient("http://"+ln.Addr().String()+"/farmasync/inventario", 2*time.Second)
	raw, err := client.PublishProduct(context.Background(), &entity.Product{
		ID: "local-1", Name: "Aspirin", Price: decimal.RequireFromString("9.99"), Stock: 10, SupplierID: "SUP1",
	})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name":"Aspirin"`)
	assert.Contains(t, string(raw), `"stock":10`)
}
