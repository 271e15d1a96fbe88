// Package jwt emite y valida los tokens de servicio que acepta el servicio de cuentas.
// El servicio de cuentas firma con HS256 y guarda el secreto en Base64; aquí se acepta el secreto
// en Base64 y, si no decodifica, se usan sus bytes tal cual.
package jwt

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims estándar más el rol, con el mismo nombre de claim que usa el servicio de cuentas.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Generate firma un token para subject (email del administrador de servicio) con el rol indicado.
func Generate(secret, subject, role, issuer string, expMinutes int) (string, error) {
	key, err := signingKey(secret)
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// Parse valida firma y expiración y devuelve subject y rol.
func Parse(secret, tokenString string) (subject, role string, err error) {
	key, err := signingKey(secret)
	if err != nil {
		return "", "", err
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("claims inválidos")
	}
	return claims.Subject, claims.Role, nil
}

func signingKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if key, err := base64.StdEncoding.DecodeString(secret); err == nil && len(key) > 0 {
		return key, nil
	}
	return []byte(secret), nil
}
