package ai

import (
	"fmt"
	"strings"

	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

// maxCatalogLines cota de productos que se envían como contexto al modelo.
const maxCatalogLines = 50

const agentSystemPrompt = `Eres el asistente de FarmaSync, un sistema de gestión de farmacias.
Responde en español, de forma breve y concreta.
Usa solo el catálogo incluido en el mensaje para hablar de productos, precios o stock; si un dato no aparece, dilo.
No inventes productos. No des indicaciones médicas; sugiere consultar a un profesional cuando aplique.
Para crear productos o usuarios indica que pueden escribir "crear producto" o "crear usuario".`

// buildUserContent arma el mensaje con el catálogo y la consulta.
func buildUserContent(question string, catalog []*entity.Product) string {
	var b strings.Builder
	if len(catalog) == 0 {
		b.WriteString("Catálogo: (vacío)\n")
	} else {
		b.WriteString("Catálogo:\n")
		for i, p := range catalog {
			if i == maxCatalogLines {
				fmt.Fprintf(&b, "... y %d productos más\n", len(catalog)-maxCatalogLines)
				break
			}
			fmt.Fprintf(&b, "- %s | precio %s | stock %d", p.Name, p.Price.StringFixed(2), p.Stock)
			if p.Description != "" {
				fmt.Fprintf(&b, " | %s", p.Description)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\nConsulta: ")
	b.WriteString(strings.TrimSpace(question))
	return b.String()
}
