package session

import (
	"fmt"
	"strings"

	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

// Field un paso del asistente: pregunta, etiqueta del resumen y validador.
type Field struct {
	Step     entity.Step
	Label    string
	Prompt   string
	Retry    string // pregunta al rechazar; vacío = Prompt
	Secret   bool   // no aparece en el resumen
	validate func(string) (string, error)
}

// Validate devuelve el valor canónico que se guarda en el estado de la sesión.
func (f Field) Validate(answer string) (string, error) {
	return f.validate(answer)
}

// RetryPrompt pregunta que se repite tras una respuesta inválida.
func (f Field) RetryPrompt() string {
	if f.Retry != "" {
		return f.Retry
	}
	return f.Prompt
}

// Flow tabla de transiciones de un tipo de sesión: los campos en orden y luego StepConfirm.
type Flow struct {
	Kind          entity.SessionKind
	Fields        []Field
	ConfirmPrompt string
}

var productFlow = &Flow{
	Kind: entity.SessionKindProduct,
	Fields: []Field{
		{Step: entity.StepName, Label: "Nombre", Prompt: "¿Cuál es el nombre del producto?",
			validate: RequireText(entity.StepName, "El nombre no puede estar vacío")},
		{Step: entity.StepDescription, Label: "Descripcion", Prompt: "Escribe una descripción (puedes dejarla vacía):",
			validate: OptionalText},
		{Step: entity.StepPrice, Label: "Precio", Prompt: "Indica el precio (número mayor a 0):",
			validate: canonicalPrice},
		{Step: entity.StepStock, Label: "Stock", Prompt: "Indica la cantidad de stock (entero >= 0):",
			validate: canonicalStock},
		{Step: entity.StepSupplierID, Label: "Proveedor", Prompt: "Indica el id del proveedor (supplier_id):",
			validate: RequireText(entity.StepSupplierID, "supplier_id no puede estar vacío")},
		{Step: entity.StepImageURL, Label: "Imagen", Prompt: "Opcional: indica URL de imagen o deja en blanco:",
			validate: OptionalText},
	},
	ConfirmPrompt: "¿Confirmas la creación del producto? (si/no)",
}

var userFlow = &Flow{
	Kind: entity.SessionKindUser,
	Fields: []Field{
		{Step: entity.StepName, Label: "Nombre", Prompt: "¿Cuál es el nombre del usuario?",
			validate: RequireText(entity.StepName, "El nombre no puede estar vacío")},
		{Step: entity.StepLastName, Label: "Apellido", Prompt: "¿Cuál es el apellido?",
			validate: RequireText(entity.StepLastName, "El apellido no puede estar vacío")},
		{Step: entity.StepEmail, Label: "Email", Prompt: "Indica el email del usuario:",
			validate: ValidateEmail},
		{Step: entity.StepPassword, Label: "Contraseña", Prompt: "Indica la contraseña (mínimo 4 caracteres):",
			Secret: true, validate: ValidatePassword},
		{Step: entity.StepPhone, Label: "Telefono", Prompt: "Indica el teléfono (opcional, puedes dejar vacío):",
			validate: OptionalText},
		{Step: entity.StepAddress, Label: "Direccion", Prompt: "Indica la dirección (opcional):",
			validate: OptionalText},
		{Step: entity.StepAccountKind, Label: "Tipo",
			Prompt:   "¿Qué tipo de usuario? (customer/supplier). No se permiten admins.",
			Retry:    "¿Qué tipo de usuario? (customer/supplier):",
			validate: ParseAccountKind},
	},
	ConfirmPrompt: "¿Confirmas la creación del usuario? (si/no)",
}

// FlowFor devuelve la tabla de transiciones del tipo de sesión.
func FlowFor(kind entity.SessionKind) (*Flow, error) {
	switch kind {
	case entity.SessionKindProduct:
		return productFlow, nil
	case entity.SessionKindUser:
		return userFlow, nil
	}
	return nil, fmt.Errorf("%w: tipo de sesión %q", domain.ErrInvalidInput, kind)
}

// First primer campo del asistente.
func (f *Flow) First() Field { return f.Fields[0] }

// Field busca el campo correspondiente a step.
func (f *Flow) Field(step entity.Step) (Field, bool) {
	for _, fld := range f.Fields {
		if fld.Step == step {
			return fld, true
		}
	}
	return Field{}, false
}

// Next paso que sigue a step; tras el último campo viene StepConfirm.
func (f *Flow) Next(step entity.Step) entity.Step {
	for i, fld := range f.Fields {
		if fld.Step != step {
			continue
		}
		if i+1 < len(f.Fields) {
			return f.Fields[i+1].Step
		}
		return entity.StepConfirm
	}
	return entity.StepConfirm
}

// Contains indica si step pertenece a la secuencia (incluido StepConfirm).
func (f *Flow) Contains(step entity.Step) bool {
	if step == entity.StepConfirm {
		return true
	}
	_, ok := f.Field(step)
	return ok
}

// Summary resumen legible de lo capturado, usado como pregunta de confirmación.
func (f *Flow) Summary(state map[string]string) string {
	var b strings.Builder
	b.WriteString("Resumen:\n")
	for _, fld := range f.Fields {
		if fld.Secret {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", fld.Label, state[string(fld.Step)])
	}
	b.WriteString("\n")
	b.WriteString(f.ConfirmPrompt)
	return b.String()
}

// ValidateAll aplica la tabla completa a un formulario de una sola vez (atajos sin asistente).
// Devuelve el estado canónico o el primer ValidationError.
func (f *Flow) ValidateAll(answers map[entity.Step]string) (map[string]string, error) {
	state := make(map[string]string, len(f.Fields))
	for _, fld := range f.Fields {
		v, err := fld.Validate(answers[fld.Step])
		if err != nil {
			return nil, err
		}
		state[string(fld.Step)] = v
	}
	return state, nil
}
