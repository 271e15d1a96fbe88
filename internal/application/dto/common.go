package dto

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse cuerpo de error HTTP del microservicio de inventario.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FailureResponse sobre {ok:false, error} de las rutas de administración y del agente.
type FailureResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// MessageResponse confirmación simple (p. ej. al eliminar).
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse salida de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
