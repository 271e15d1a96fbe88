package jwt_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/farmasync-api/pkg/jwt"
)

const (
	testSubject = "admin@farmasync.co"
	testIssuer  = "farmasync-agent-test"
)

var testSecret = base64.StdEncoding.EncodeToString([]byte("una-clave-de-al-menos-32-bytes-de-largo"))

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSubject, "ADMIN", testIssuer, 5)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testSubject, subject)
	assert.Equal(t, "ADMIN", role)
}

func TestParse_RawSecretFallback(t *testing.T) {
	// "clave plana!" no es Base64 válido: se firma con sus bytes
	tok, err := pkgjwt.Generate("clave plana!", testSubject, "ADMIN", testIssuer, 5)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse("clave plana!", tok)
	assert.NoError(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSubject, "ADMIN", testIssuer, -1)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSubject, "ADMIN", testIssuer, 5)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse(base64.StdEncoding.EncodeToString([]byte("otra-clave-completamente-distinta")), tok)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := pkgjwt.Generate("", testSubject, "ADMIN", testIssuer, 5)
	assert.Error(t, err)
}
