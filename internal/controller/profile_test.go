package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAvatarUpdatesAccount(t *testing.T) {
	var calls []string
	client, store := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/Social/upload":
			w.Write([]byte(`{"success":true,"message":"ok","url":"/uploads/a.png"}`))
		case "/Users/avatar":
			w.Write([]byte(`{"success":true,"message":"Avatar actualizado","data":{"userID":1,"nombre":"Ana","email":"a@b.com","avatarURL":"/uploads/a.png","fechaRegistro":"2024-01-01T00:00:00"}}`))
		default:
			w.Write([]byte(`{"success":false,"message":"no"}`))
		}
	}))
	require.NoError(t, store.Save("T", 1, "Ana", "a@b.com"))

	c := NewProfile(client, store)
	defer c.Close()

	c.UploadAvatar("avatar.png", "image/png", []byte("PNGDATA"))

	require.Equal(t, []string{"POST /Social/upload", "PUT /Users/avatar"}, calls)
	assert.Equal(t, "Avatar actualizado", c.ActionMessage())
}

func TestUploadFailureAbortsAvatarUpdate(t *testing.T) {
	var calls []string
	client, store := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"formato no soportado"}`))
	}))
	require.NoError(t, store.Save("T", 1, "Ana", "a@b.com"))

	c := NewProfile(client, store)
	defer c.Close()

	c.UploadAvatar("anim.gif", "image/gif", []byte("GIF"))

	require.Equal(t, []string{"POST /Social/upload"}, calls)
	assert.Contains(t, c.ActionMessage(), "No se pudo subir la imagen")
	assert.Contains(t, c.ActionMessage(), "formato no soportado")
}

func TestProfileRequiresSession(t *testing.T) {
	client, store := testClient(t, jsonHandler(`{"success":true,"message":"ok"}`))

	c := NewProfile(client, store)
	defer c.Close()

	state := c.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.Equal(t, "Inicia sesión para ver tu perfil", state.Message)
}
