package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("registro duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrSessionCompleted  = errors.New("sesión ya completada")
	ErrInvalidStep       = errors.New("paso desconocido en la sesión")
	ErrDownstream        = errors.New("servicio externo con error")
	ErrConfiguration     = errors.New("configuración incompleta")
	ErrCommitFailed      = errors.New("no se pudo completar la creación")
)

// ValidationError rechazo de una respuesta o campo concreto. El mensaje es apto para mostrar al usuario.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye el error para field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
