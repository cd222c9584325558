package controller

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedHandler keeps one post in memory and applies like toggles the way the
// backend does, so reloads observe server-computed counts.
type feedHandler struct {
	mu      sync.Mutex
	likes   int
	likedBy bool
	creates int
}

func (h *feedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/Social/posts/1/like":
		if h.likedBy {
			h.likes--
		} else {
			h.likes++
		}
		h.likedBy = !h.likedBy
		io.WriteString(w, `{"success":true,"message":"ok","data":"ok"}`)

	case r.Method == http.MethodPost && r.URL.Path == "/Social/posts":
		h.creates++
		io.WriteString(w, `{"success":true,"message":"ok","data":{"postID":2,"userID":1,"usuarioNombre":"Ana","descripcion":"nuevo","fechaPublicacion":"2024-01-01T00:00:00","totalLikes":0,"totalComentarios":0,"usuarioLeDioLike":false,"tiempoTranscurrido":"hace un momento"}}`)

	case r.Method == http.MethodPost && r.URL.Path == "/Social/upload":
		io.WriteString(w, `{"success":false,"message":"formato no soportado","url":""}`)

	default:
		fmt.Fprintf(w, `{"success":true,"message":"ok","data":[{"postID":1,"userID":9,"usuarioNombre":"Luis","descripcion":"mi proyecto","fechaPublicacion":"2024-01-01T00:00:00","totalLikes":%d,"totalComentarios":0,"usuarioLeDioLike":%t,"tiempoTranscurrido":"hace 2 horas"}]}`, h.likes, h.likedBy)
	}
}

func TestToggleLikeTwiceRestoresOriginalState(t *testing.T) {
	h := &feedHandler{likes: 1}
	client, _ := testClient(t, h)
	c := NewSocial(client)
	defer c.Close()

	c.Load()
	state := c.Posts()
	require.Equal(t, PhaseSuccess, state.Phase)
	require.False(t, state.Payload[0].LikedByMe)
	require.Equal(t, 1, state.Payload[0].LikeCount)

	c.ToggleLike(1)
	state = c.Posts()
	assert.True(t, state.Payload[0].LikedByMe)
	assert.Equal(t, 2, state.Payload[0].LikeCount)

	c.ToggleLike(1)
	state = c.Posts()
	assert.False(t, state.Payload[0].LikedByMe)
	assert.Equal(t, 1, state.Payload[0].LikeCount)
}

func TestUploadFailureAbortsPostCreation(t *testing.T) {
	h := &feedHandler{}
	client, _ := testClient(t, h)
	c := NewSocial(client)
	defer c.Close()
	c.actionTTL = time.Minute

	c.CreatePost("", "mira mi auto", "foto.gif", "image/gif", []byte("GIF"))

	h.mu.Lock()
	creates := h.creates
	h.mu.Unlock()
	assert.Equal(t, 0, creates, "create must never run after a failed upload")
	assert.Contains(t, c.ActionMessage(), "No se pudo subir la imagen")
	assert.Contains(t, c.ActionMessage(), "formato no soportado")
}

func TestBlankCommentShortCircuits(t *testing.T) {
	var calls int
	var mu sync.Mutex
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
	}))
	c := NewSocial(client)
	defer c.Close()
	c.actionTTL = time.Minute

	c.AddComment(1, "   ")
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, calls)
	assert.Equal(t, "Escribe un comentario", c.ActionMessage())
}
