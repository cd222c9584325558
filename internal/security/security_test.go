package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.CreateForUser(42)
	require.NoError(t, err)

	id, err := svc.UserID(token)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).CreateForUser(1)
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).UserID(token)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)
	token, err := svc.CreateForUser(1)
	require.NoError(t, err)

	_, err = svc.UserID(token)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	_, err := svc.UserID("not-a-token")
	assert.Error(t, err)
}

func TestEncryptRoundTrip(t *testing.T) {
	enc, err := NewEncryptor([]byte("any-length-secret-works"))
	require.NoError(t, err)

	sealed, err := enc.Encrypt("¿Sigue disponible el Civic?")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "Civic")

	plain, err := enc.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "¿Sigue disponible el Civic?", plain)
}

func TestDecryptRejectsTampering(t *testing.T) {
	enc, err := NewEncryptor([]byte("k"))
	require.NoError(t, err)

	sealed, err := enc.Encrypt("hola")
	require.NoError(t, err)

	tampered := "A" + sealed[1:]
	if tampered == sealed {
		tampered = "B" + sealed[1:]
	}
	_, err = enc.Decrypt(tampered)
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	h := NewPasswordHasher(4) // low cost keeps the test fast

	hashed, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hashed)

	assert.NoError(t, h.Verify("secret1", hashed))
	assert.Error(t, h.Verify("wrong", hashed))
}
