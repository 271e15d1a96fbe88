package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

var catalog = []*entity.Product{
	{Name: "Ibuprofeno 400mg", Price: decimal.RequireFromString("12.5"), Stock: 45, Description: "Analgésico"},
}

func TestAnthropicService_Answer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "Ibuprofeno 400mg | precio 12.50 | stock 45")
		assert.Contains(t, req.Messages[0].Content, "Consulta: ¿hay ibuprofeno?")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":" Sí, quedan 45 unidades. "}]}`))
	}))
	defer srv.Close()

	svc := NewAnthropicService("test-key", "claude-test").WithBaseURL(srv.URL)
	got, err := svc.Answer(context.Background(), "¿hay ibuprofeno?", catalog)
	require.NoError(t, err)
	assert.Equal(t, "Sí, quedan 45 unidades.", got)
}

func TestAnthropicService_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	_, err := NewAnthropicService("bad", "m").WithBaseURL(srv.URL).Answer(context.Background(), "hola", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
}

func TestGeminiService_Answer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hola"},{"text":" mundo"}]}}]}`))
	}))
	defer srv.Close()

	got, err := NewGeminiService("k", "gemini-test").WithBaseURL(srv.URL).Answer(context.Background(), "hola", catalog)
	require.NoError(t, err)
	assert.Equal(t, "Hola mundo", got)
}

func TestAnswer_WithoutKeyIsConfigurationError(t *testing.T) {
	_, err := NewAnthropicService("", "m").Answer(context.Background(), "hola", nil)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	_, err = NewGeminiService("", "m").Answer(context.Background(), "hola", nil)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestBuildUserContent_EmptyCatalog(t *testing.T) {
	assert.Equal(t, "Catálogo: (vacío)\n\nConsulta: hola", buildUserContent("  hola ", nil))
}
