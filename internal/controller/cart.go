package controller

import (
	"fmt"
	"strings"

	"tuninggarage/internal/api"
	"tuninggarage/internal/domain"
)

const emptyCartMessage = "Tu carrito está vacío"

// CartController drives the cart screen and checkout. Totals are never
// computed locally; every successful mutation refetches the cart so the
// screen always shows server-computed figures.
type CartController struct {
	base
	api   *api.Client
	state State[domain.Cart]
}

func NewCart(client *api.Client) *CartController {
	return &CartController{base: newBase(), api: client}
}

func (c *CartController) State() State[domain.Cart] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *CartController) Load() {
	c.mu.Lock()
	seq := c.begin()
	c.state = beginLoad(c.state)
	c.mu.Unlock()

	cart, err := c.api.Cart().Get(c.ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(seq) {
		return
	}
	c.state = finishLoad(c.state, cart, err == nil && len(cart.Items) == 0, emptyCartMessage, err)
}

// Add validates the quantity against the product's stock before any network
// call is made.
func (c *CartController) Add(productID, quantity, stock int) {
	if quantity < 1 {
		c.notify("Cantidad inválida")
		return
	}
	if quantity > stock {
		c.notify("Stock insuficiente")
		return
	}

	msg, err := c.api.Cart().Add(c.ctx, productID, quantity)
	c.afterMutation(msg, err)
}

// SetQuantity enforces the [1, stock] range: decrementing from 1 turns into
// a removal, and exceeding the available stock never leaves the client.
func (c *CartController) SetQuantity(item domain.CartItem, quantity int) {
	if quantity < 1 {
		c.Remove(item.ID)
		return
	}
	if quantity > item.StockLeft {
		c.notify("Stock insuficiente")
		return
	}

	msg, err := c.api.Cart().UpdateQuantity(c.ctx, item.ID, quantity)
	c.afterMutation(msg, err)
}

func (c *CartController) Remove(cartItemID int) {
	msg, err := c.api.Cart().Remove(c.ctx, cartItemID)
	c.afterMutation(msg, err)
}

func (c *CartController) Clear() {
	msg, err := c.api.Cart().Clear(c.ctx)
	c.afterMutation(msg, err)
}

// Checkout places the order from the current cart. The backend empties the
// cart on success, so the follow-up reload lands on Empty.
func (c *CartController) Checkout(req api.CreateOrderRequest) Nav {
	if strings.TrimSpace(req.ShippingStreet) == "" || strings.TrimSpace(req.ContactPhone) == "" {
		c.notify("Completa la dirección y el teléfono de contacto")
		return NavNone
	}

	order, err := c.api.Orders().Create(c.ctx, req)
	if err != nil {
		c.notify(failureMessage(err))
		return NavNone
	}

	c.notify(fmt.Sprintf("Pedido #%d creado", order.ID))
	c.Load()
	return NavOrders
}

func (c *CartController) afterMutation(msg string, err error) {
	if err != nil {
		c.notify(failureMessage(err))
		return
	}
	if msg != "" {
		c.notify(msg)
	}
	c.Load()
}

func (c *CartController) notify(msg string) {
	c.mu.Lock()
	c.setAction(msg)
	c.mu.Unlock()
}
