package ports

import (
	"context"

	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

// LLMService define el puerto de salida para responder consultas libres del agente.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz.
type LLMService interface {
	// Answer responde la consulta usando el catálogo como contexto.
	// Devuelve un error envuelto en domain.ErrConfiguration si el adaptador no tiene credenciales.
	Answer(ctx context.Context, question string, catalog []*entity.Product) (string, error)
}
