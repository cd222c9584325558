package controller

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productJSON(id int, name string) string {
	return `{"productID":` + strconv.Itoa(id) + `,"categoryID":1,"categoriaNombre":"Motor","nombre":"` + name + `","precio":100,"stock":3,"disponible":true}`
}

func TestSearchBlankQueryLoadsAll(t *testing.T) {
	var paths []string
	var mu sync.Mutex
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"message":"ok","data":[`+productJSON(1, "Turbo")+`]}`)
	}))
	c := NewProducts(client)
	defer c.Close()

	c.Search("   ")
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, paths, 1)
	assert.Equal(t, "/Products", paths[0])
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasPrefix(r.URL.Path, "/Products/search") {
			io.WriteString(w, `{"success":true,"message":"ok","data":[`+productJSON(2, "Escape deportivo")+`]}`)
			return
		}
		close(slowStarted)
		<-releaseSlow
		io.WriteString(w, `{"success":true,"message":"ok","data":[`+productJSON(1, "Turbo")+`]}`)
	}))
	c := NewProducts(client)
	defer c.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Load(nil)
	}()

	<-slowStarted
	c.Search("escape")

	state := c.Products()
	require.Equal(t, PhaseSuccess, state.Phase)
	require.Len(t, state.Payload, 1)
	assert.Equal(t, "Escape deportivo", state.Payload[0].Name)

	// The slow unfiltered load finishes last but carries a stale sequence.
	close(releaseSlow)
	<-done

	state = c.Products()
	require.Equal(t, PhaseSuccess, state.Phase)
	require.Len(t, state.Payload, 1)
	assert.Equal(t, "Escape deportivo", state.Payload[0].Name)
}

func TestEmptySearchResultIsEmptyState(t *testing.T) {
	client, _ := testClient(t, jsonHandler(`{"success":true,"message":"ok","data":[]}`))
	c := NewProducts(client)
	defer c.Close()

	c.Search("no existe")
	assert.Equal(t, PhaseEmpty, c.Products().Phase)
}

func TestFailedRefreshKeepsShownProducts(t *testing.T) {
	var fail bool
	var mu sync.Mutex
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		shouldFail := fail
		mu.Unlock()
		if shouldFail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"message":"ok","data":[`+productJSON(1, "Turbo")+`]}`)
	}))
	c := NewProducts(client)
	defer c.Close()

	c.Load(nil)
	require.Equal(t, PhaseSuccess, c.Products().Phase)

	mu.Lock()
	fail = true
	mu.Unlock()

	c.Load(nil)
	state := c.Products()
	assert.Equal(t, PhaseSuccess, state.Phase, "stale content stays visible on refresh failure")
	require.Len(t, state.Payload, 1)
	assert.Equal(t, "Turbo", state.Payload[0].Name)
}
