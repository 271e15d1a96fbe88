package downstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/farmasync-api/internal/application/ports"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/farmasync-api/pkg/jwt"
)

var _ ports.AccountService = (*AccountClient)(nil)

const (
	accountService   = "usuarios"
	serviceTokenRole = "ADMIN"
	serviceTokenTTL  = 5 // minutos
)

// AccountConfig rutas y credenciales del servicio de cuentas.
type AccountConfig struct {
	BaseURL      string
	RegisterPath string
	UsersPath    string
	Timeout      time.Duration
	// JWTSecret si no está vacío, las altas con rol llevan un token de servicio firmado con él.
	JWTSecret  string
	JWTIssuer  string
	JWTSubject string
}

// accountUser formato de usuario del servicio de cuentas.
type accountUser struct {
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	IDRol     *int   `json:"idRol,omitempty"`
}

// AccountClient cliente del servicio de cuentas.
type AccountClient struct {
	cfg        AccountConfig
	httpClient *http.Client
}

// NewAccountClient construye el cliente.
func NewAccountClient(cfg AccountConfig) *AccountClient {
	return &AccountClient{cfg: cfg, httpClient: &http.Client{Timeout: cfg.Timeout}}
}

// RegisterCustomer usa el endpoint de autorregistro, que asigna el rol cliente.
func (c *AccountClient) RegisterCustomer(ctx context.Context, u *entity.User) (string, error) {
	raw, err := postJSON(ctx, c.httpClient, accountService, joinURL(c.cfg.BaseURL, c.cfg.RegisterPath), toAccountUser(u, nil), nil)
	if err != nil {
		return "", err
	}
	return decodeID(raw)
}

// CreateWithRole usa el endpoint genérico de usuarios con idRol.
func (c *AccountClient) CreateWithRole(ctx context.Context, u *entity.User, roleID int) (string, error) {
	headers, err := c.authHeaders()
	if err != nil {
		return "", err
	}
	raw, err := postJSON(ctx, c.httpClient, accountService, joinURL(c.cfg.BaseURL, c.cfg.UsersPath), toAccountUser(u, &roleID), headers)
	if err != nil {
		return "", err
	}
	return decodeID(raw)
}

func (c *AccountClient) authHeaders() (map[string]string, error) {
	if c.cfg.JWTSecret == "" {
		return nil, nil
	}
	tok, err := pkgjwt.Generate(c.cfg.JWTSecret, c.cfg.JWTSubject, serviceTokenRole, c.cfg.JWTIssuer, serviceTokenTTL)
	if err != nil {
		return nil, &ports.DownstreamError{Service: accountService, Err: fmt.Errorf("firmar token de servicio: %w", err)}
	}
	return map[string]string{"Authorization": "Bearer " + tok}, nil
}

func toAccountUser(u *entity.User, roleID *int) accountUser {
	return accountUser{
		Nombre:    u.FirstName,
		Apellido:  u.LastName,
		Email:     u.Email,
		Password:  u.Password,
		Telefono:  u.Phone,
		Direccion: u.Address,
		IDRol:     roleID,
	}
}

// decodeID extrae "id" de la respuesta; el servicio lo devuelve numérico.
// Una respuesta 2xx sin id cuenta como alta hecha: el usuario ya existe en el servicio de cuentas.
func decodeID(raw []byte) (string, error) {
	var body struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", &ports.DownstreamError{Service: accountService, Err: fmt.Errorf("respuesta no es JSON: %w", err)}
	}
	if len(body.ID) == 0 || string(body.ID) == "null" {
		log.Warn().Str("service", accountService).Msg("alta aceptada sin id en la respuesta")
		return "", nil
	}
	var s string
	if err := json.Unmarshal(body.ID, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(body.ID, &n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10), nil
		}
		return n.String(), nil
	}
	return "", &ports.DownstreamError{Service: accountService, Err: fmt.Errorf("id con formato inesperado: %s", body.ID)}
}
