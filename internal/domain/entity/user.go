package entity

// Tipos de cuenta que se pueden dar de alta por autoservicio. "admin" no está permitido.
const (
	AccountKindCustomer = "customer"
	AccountKindSupplier = "supplier"
)

// User usuario a registrar en el servicio de cuentas. No hay almacén local de usuarios:
// el ID lo asigna el servicio de cuentas.
type User struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Password    string // se envía tal cual al servicio de cuentas
	Phone       string
	Address     string
	AccountKind string // customer | supplier
}
