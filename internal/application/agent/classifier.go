// Package agent implementa la puerta de entrada conversacional: sonda de conectividad,
// clasificación por palabras clave, pase directo de sesiones y respuesta libre con LLM.
package agent

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Intent intención reconocida en una consulta de texto libre.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentPing
	IntentCreateUser
	IntentCreateProduct
	IntentListProducts
)

func (i Intent) String() string {
	switch i {
	case IntentPing:
		return "ping"
	case IntentCreateUser:
		return "create-user"
	case IntentCreateProduct:
		return "create-product"
	case IntentListProducts:
		return "list-products"
	}
	return "unknown"
}

var (
	createVerbs  = []string{"crear", "crea", "registrar", "registra", "agregar", "agrega", "anadir", "nuevo", "nueva", "dar de alta", "create", "add", "new", "register"}
	userNouns    = []string{"usuario", "usuarios", "cliente", "clientes", "proveedor", "proveedores", "cuenta", "user", "customer", "supplier", "account"}
	productNouns = []string{"producto", "productos", "medicamento", "medicina", "farmaco", "product"}
	listPhrases  = []string{"listar", "lista", "mostrar", "muestra", "ver", "cuales", "que", "inventario", "catalogo", "list", "show"}
	listNouns    = []string{"productos", "medicamentos", "medicinas", "farmacos", "inventario", "catalogo", "products"}
)

// Classify reconoce la intención sin distinguir mayúsculas ni tildes. Solo decide a qué operación
// se enruta; nunca valida ni crea nada por sí misma.
func Classify(text string) Intent {
	q := fold(text)
	if q == "" {
		return IntentUnknown
	}
	if q == "ping" {
		return IntentPing
	}
	words := strings.Fields(q)
	hasCreate := containsAny(q, words, createVerbs)
	switch {
	case hasCreate && containsAny(q, words, userNouns):
		return IntentCreateUser
	case hasCreate && containsAny(q, words, productNouns):
		return IntentCreateProduct
	case containsAny(q, words, listNouns) && containsAny(q, words, listPhrases):
		return IntentListProducts
	}
	return IntentUnknown
}

// fold pasa a minúsculas, quita tildes y signos de puntuación, y colapsa espacios.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, out)
	return strings.Join(strings.Fields(out), " ")
}

// containsAny busca palabras sueltas por igualdad y frases de varias palabras por subcadena.
func containsAny(q string, words, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(term, " ") {
			if strings.Contains(q, term) {
				return true
			}
			continue
		}
		for _, w := range words {
			if w == term {
				return true
			}
		}
	}
	return false
}
