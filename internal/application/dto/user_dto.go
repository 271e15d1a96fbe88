package dto

import "github.com/jhoicas/farmasync-api/internal/domain/entity"

// AdminUserRequest formulario completo del atajo POST /admin/user/create.
type AdminUserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	AccountKind string `json:"account_kind"`
}

// UserResponse usuario creado en el servicio de cuentas (sin password).
type UserResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	AccountKind string `json:"account_kind"`
}

// UserCommitResult resultado de confirmar un usuario.
type UserCommitResult struct {
	User UserResponse `json:"user"`
}

// NewUserResponse mapea la entidad a su salida.
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Phone:       u.Phone,
		Address:     u.Address,
		AccountKind: u.AccountKind,
	}
}
