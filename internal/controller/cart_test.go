package controller

import (
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuninggarage/internal/api"
	"tuninggarage/internal/domain"
)

func apiCreateOrder(street, phone string) api.CreateOrderRequest {
	return api.CreateOrderRequest{ShippingStreet: street, ContactPhone: phone}
}

const emptyCartJSON = `{"success":true,"message":"ok","data":{"items":[],"total":0,"totalItems":0}}`

// recordingHandler replies to cart reads and mutations while remembering
// every method+path it saw.
type recordingHandler struct {
	mu       sync.Mutex
	requests []string
	cartJSON string
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.requests = append(h.requests, r.Method+" "+r.URL.Path)
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodGet {
		io.WriteString(w, h.cartJSON)
		return
	}
	io.WriteString(w, `{"success":true,"message":"Carrito actualizado","data":"ok"}`)
}

func (h *recordingHandler) seen() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.requests...)
}

func TestEmptyCartIsEmptyState(t *testing.T) {
	client, _ := testClient(t, jsonHandler(emptyCartJSON))
	c := NewCart(client)
	defer c.Close()

	c.Load()
	assert.Equal(t, PhaseEmpty, c.State().Phase)
	assert.Equal(t, "Tu carrito está vacío", c.State().Message)
}

func TestCartReflectsServerTotals(t *testing.T) {
	client, _ := testClient(t, jsonHandler(`{"success":true,"message":"ok","data":{
		"items":[
			{"cartItemID":1,"productID":10,"productoNombre":"Turbo K04","precioUnitario":450.5,"cantidad":2,"subtotal":901.0,"stockDisponible":5},
			{"cartItemID":2,"productID":11,"productoNombre":"Bujías","precioUnitario":12.25,"cantidad":4,"subtotal":49.0,"stockDisponible":40}
		],"total":950.0,"totalItems":6}}`))
	c := NewCart(client)
	defer c.Close()

	c.Load()
	state := c.State()
	require.Equal(t, PhaseSuccess, state.Phase)
	assert.Equal(t, 950.0, state.Payload.Total)
	assert.Equal(t, 6, state.Payload.TotalItems)
	assert.Len(t, state.Payload.Items, 2)
}

func TestQuantityNeverLeavesValidRange(t *testing.T) {
	h := &recordingHandler{cartJSON: emptyCartJSON}
	client, _ := testClient(t, h)
	c := NewCart(client)
	defer c.Close()
	c.actionTTL = time.Minute

	item := domain.CartItem{ID: 3, Quantity: 2, StockLeft: 5}
	c.SetQuantity(item, 6)
	assert.Empty(t, h.seen(), "over-stock update must not reach the network")
	assert.Equal(t, "Stock insuficiente", c.ActionMessage())

	c.Add(10, 0, 5)
	assert.Empty(t, h.seen())
}

func TestDecrementFromOneRemovesItem(t *testing.T) {
	h := &recordingHandler{cartJSON: emptyCartJSON}
	client, _ := testClient(t, h)
	c := NewCart(client)
	defer c.Close()

	item := domain.CartItem{ID: 3, Quantity: 1, StockLeft: 5}
	c.SetQuantity(item, 0)

	seen := h.seen()
	require.NotEmpty(t, seen)
	assert.Equal(t, "DELETE /Cart/3", seen[0])
	assert.Contains(t, seen, "GET /Cart")
}

func TestMutationRefetchesCart(t *testing.T) {
	h := &recordingHandler{cartJSON: emptyCartJSON}
	client, _ := testClient(t, h)
	c := NewCart(client)
	defer c.Close()

	c.Add(10, 2, 5)
	assert.Equal(t, []string{"POST /Cart", "GET /Cart"}, h.seen())
}

func TestCheckoutValidatesShippingFields(t *testing.T) {
	h := &recordingHandler{cartJSON: emptyCartJSON}
	client, _ := testClient(t, h)
	c := NewCart(client)
	defer c.Close()
	c.actionTTL = time.Minute

	nav := c.Checkout(apiCreateOrder("", "555-0100"))
	assert.Equal(t, NavNone, nav)
	nav = c.Checkout(apiCreateOrder("Av. Siempre Viva 742", "  "))
	assert.Equal(t, NavNone, nav)
	assert.Empty(t, h.seen())
	assert.Equal(t, "Completa la dirección y el teléfono de contacto", c.ActionMessage())
}

func TestActionMessageExpires(t *testing.T) {
	h := &recordingHandler{cartJSON: emptyCartJSON}
	client, _ := testClient(t, h)
	c := NewCart(client)
	defer c.Close()
	c.actionTTL = 20 * time.Millisecond

	c.Add(10, 0, 5)
	assert.Equal(t, "Cantidad inválida", c.ActionMessage())

	require.Eventually(t, func() bool {
		return c.ActionMessage() == ""
	}, time.Second, 5*time.Millisecond)
}
