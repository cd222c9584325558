package controller

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tuninggarage/internal/api"
	"tuninggarage/internal/session"
)

func testClient(t *testing.T, handler http.Handler) (*api.Client, *session.Store) {
	t.Helper()

	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := api.New(store, api.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client, store
}

func jsonHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}
