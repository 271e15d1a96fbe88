package dto

import (
	"encoding/json"
	"time"
)

// StartSessionResponse salida de start: id de sesión y primera pregunta.
type StartSessionResponse struct {
	SessionID string `json:"sessionId"`
	Question  string `json:"question"`
}

// ContinueSessionRequest respuesta del usuario al paso actual.
type ContinueSessionRequest struct {
	Answer string `json:"answer"`
}

// SessionStepResponse resultado de un turno. OK=false con Error y Question cuando la respuesta se rechaza.
type SessionStepResponse struct {
	OK        bool             `json:"ok"`
	Question  string           `json:"question,omitempty"`
	Error     string           `json:"error,omitempty"`
	Canceled  bool             `json:"canceled,omitempty"`
	Created   bool             `json:"created,omitempty"`
	Message   string           `json:"message,omitempty"`
	Product   *ProductResponse `json:"product,omitempty"`
	Inventory json.RawMessage  `json:"inventory,omitempty"`
	CardHTML  string           `json:"cardHtml,omitempty"`
	User      *UserResponse    `json:"user,omitempty"`
}

// SessionResponse vista de auditoría de una sesión (la contraseña va enmascarada).
type SessionResponse struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	State     map[string]string `json:"state"`
	Step      string            `json:"step"`
	Completed bool              `json:"completed"`
	Canceled  bool              `json:"canceled,omitempty"`
	Error     string            `json:"error,omitempty"`
	Result    json.RawMessage   `json:"result,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// MarshalJSON agrega producto, inventario y usuario con los nombres que lee el chat del frontend.
func (r SessionStepResponse) MarshalJSON() ([]byte, error) {
	type plain SessionStepResponse
	return json.Marshal(struct {
		plain
		Producto   *ProductResponse `json:"producto,omitempty"`
		Inventario json.RawMessage  `json:"inventario,omitempty"`
		Usuario    *UserResponse    `json:"usuario,omitempty"`
	}{plain(r), r.Product, r.Inventory, r.User})
}
