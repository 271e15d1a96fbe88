// Package session contiene las reglas de los asistentes de captura paso a paso:
// secuencia de campos por tipo de sesión, validación de cada respuesta y resumen de confirmación.
package session

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

const minPasswordLength = 4

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// Cotas para rechazar literales numéricos absurdos (p. ej. "1e999999") antes de persistirlos.
	maxPrice    = decimal.New(1, 12)
	maxStock    = decimal.NewFromInt(math.MaxInt32)
	minExponent = int32(-8)
	maxExponent = int32(12)

	affirmative = map[string]struct{}{
		"si": {}, "sí": {}, "s": {}, "yes": {}, "y": {},
	}
)

// RequireText recorta y exige contenido.
func RequireText(field entity.Step, message string) func(string) (string, error) {
	return func(answer string) (string, error) {
		v := strings.TrimSpace(answer)
		if v == "" {
			return "", domain.NewValidationError(string(field), message)
		}
		return v, nil
	}
}

// OptionalText recorta; vacío permitido.
func OptionalText(answer string) (string, error) {
	return strings.TrimSpace(answer), nil
}

// ParsePrice interpreta un número real positivo.
func ParsePrice(answer string) (decimal.Decimal, error) {
	invalid := domain.NewValidationError(string(entity.StepPrice), "Precio inválido. Ingresa un número mayor a 0.")
	d, err := decimal.NewFromString(strings.TrimSpace(answer))
	if err != nil {
		return decimal.Zero, invalid
	}
	if outOfRange(d) || !d.IsPositive() || d.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, invalid
	}
	return d, nil
}

// ParseStock interpreta un entero >= 0 truncando la parte decimal ("10.9" -> 10).
func ParseStock(answer string) (int, error) {
	invalid := domain.NewValidationError(string(entity.StepStock), "Stock inválido. Ingresa un entero mayor o igual a 0.")
	d, err := decimal.NewFromString(strings.TrimSpace(answer))
	if err != nil || outOfRange(d) {
		return 0, invalid
	}
	d = d.Truncate(0)
	if d.IsNegative() || d.GreaterThan(maxStock) {
		return 0, invalid
	}
	return int(d.IntPart()), nil
}

// ValidateEmail exige la forma local@dominio.tld sin espacios.
func ValidateEmail(answer string) (string, error) {
	email := strings.TrimSpace(answer)
	if !emailPattern.MatchString(email) {
		return "", domain.NewValidationError(string(entity.StepEmail), "Email inválido")
	}
	return email, nil
}

// ValidatePassword exige al menos 4 caracteres tras recortar. No se hashea aquí.
func ValidatePassword(answer string) (string, error) {
	pwd := strings.TrimSpace(answer)
	if utf8.RuneCountInString(pwd) < minPasswordLength {
		return "", domain.NewValidationError(string(entity.StepPassword), "Contraseña demasiado corta")
	}
	return pwd, nil
}

// ParseAccountKind acepta customer o supplier sin distinguir mayúsculas.
func ParseAccountKind(answer string) (string, error) {
	kind := strings.ToLower(strings.TrimSpace(answer))
	switch kind {
	case entity.AccountKindCustomer, entity.AccountKindSupplier:
		return kind, nil
	}
	return "", domain.NewValidationError(string(entity.StepAccountKind), `Tipo inválido. Debe ser "customer" o "supplier".`)
}

// IsAffirmative indica si la respuesta de confirmación es un sí.
func IsAffirmative(answer string) bool {
	_, ok := affirmative[strings.ToLower(strings.TrimSpace(answer))]
	return ok
}

func outOfRange(d decimal.Decimal) bool {
	return d.Exponent() < minExponent || d.Exponent() > maxExponent
}

func canonicalPrice(answer string) (string, error) {
	d, err := ParsePrice(answer)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

func canonicalStock(answer string) (string, error) {
	n, err := ParseStock(answer)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}
