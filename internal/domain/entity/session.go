package entity

import (
	"encoding/json"
	"time"
)

// SessionKind asistente que ejecuta una sesión.
type SessionKind string

const (
	SessionKindProduct SessionKind = "product"
	SessionKindUser    SessionKind = "user"
)

// Valid indica si k es un tipo de sesión conocido.
func (k SessionKind) Valid() bool {
	return k == SessionKindProduct || k == SessionKindUser
}

// Step campo que se está recolectando o el centinela StepConfirm.
type Step string

const (
	StepName        Step = "name"
	StepDescription Step = "description"
	StepPrice       Step = "price"
	StepStock       Step = "stock"
	StepSupplierID  Step = "supplier_id"
	StepImageURL    Step = "image_url"
	StepLastName    Step = "last_name"
	StepEmail       Step = "email"
	StepPassword    Step = "password"
	StepPhone       Step = "phone"
	StepAddress     Step = "address"
	StepAccountKind Step = "account_kind"
	StepConfirm     Step = "confirm"
	// StepCommitting se persiste tras el "sí" y antes de crear la entidad. Bloquea una segunda confirmación.
	StepCommitting Step = "committing"
)

// SessionOutcome anotación terminal de una sesión. Exactamente uno de los tres campos va informado.
type SessionOutcome struct {
	Canceled bool
	Error    string
	Result   json.RawMessage
}

// Valid verifica que haya una sola anotación terminal.
func (o SessionOutcome) Valid() bool {
	n := 0
	if o.Canceled {
		n++
	}
	if o.Error != "" {
		n++
	}
	if len(o.Result) > 0 {
		n++
	}
	return n == 1
}

// Session documento de un diálogo de captura paso a paso (producto o usuario).
// State solo crece mientras la sesión está abierta; al completarse queda como histórico.
type Session struct {
	ID        string
	Kind      SessionKind
	State     map[string]string
	Step      Step
	Completed bool
	Canceled  bool
	Error     string
	Result    json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Apply marca la sesión como terminada con la anotación indicada.
func (s *Session) Apply(o SessionOutcome) {
	s.Completed = true
	s.Canceled = o.Canceled
	s.Error = o.Error
	s.Result = o.Result
}

// CloneState copia el estado para no compartir el mapa entre lecturas y escrituras.
func (s *Session) CloneState() map[string]string {
	out := make(map[string]string, len(s.State)+1)
	for k, v := range s.State {
		out[k] = v
	}
	return out
}
