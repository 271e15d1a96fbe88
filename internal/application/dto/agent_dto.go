package dto

import "encoding/json"

// QueryRequest entrada del endpoint conversacional. La consulta es un texto libre o un objeto etiquetado.
// Se acepta la clave "query" y, por compatibilidad con el frontend existente, "consulta".
type QueryRequest struct {
	Query    json.RawMessage `json:"query"`
	Consulta json.RawMessage `json:"consulta"`
}

// Payload devuelve la consulta enviada, sea cual sea la clave usada.
func (r QueryRequest) Payload() json.RawMessage {
	if len(r.Query) > 0 {
		return r.Query
	}
	return r.Consulta
}

// SessionContinueCommand objeto etiquetado que conduce una sesión existente desde el chat.
type SessionContinueCommand struct {
	UserSessionContinue    bool   `json:"user_session_continue"`
	ProductSessionContinue bool   `json:"product_session_continue"`
	SessionID              string `json:"sessionId"`
	SessionIDAlt           string `json:"session_id"`
	Answer                 string `json:"answer"`
}

// ID identificador de la sesión en cualquiera de sus dos grafías.
func (c SessionContinueCommand) ID() string {
	if c.SessionID != "" {
		return c.SessionID
	}
	return c.SessionIDAlt
}

// QueryResponse salida del endpoint conversacional.
type QueryResponse struct {
	Data any `json:"data"`
}
