package controller

import (
	"tuninggarage/internal/api"
	"tuninggarage/internal/domain"
)

// OrdersController drives the order history list and the order detail view.
// Orders are read-only from here; creation happens through checkout.
type OrdersController struct {
	base
	api    *api.Client
	list   State[[]domain.Order]
	detail State[domain.Order]
}

func NewOrders(client *api.Client) *OrdersController {
	return &OrdersController{base: newBase(), api: client}
}

func (c *OrdersController) List() State[[]domain.Order] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list
}

func (c *OrdersController) Detail() State[domain.Order] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detail
}

func (c *OrdersController) Load() {
	c.mu.Lock()
	seq := c.begin()
	c.list = beginLoad(c.list)
	c.mu.Unlock()

	orders, err := c.api.Orders().ListMine(c.ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(seq) {
		return
	}
	c.list = finishLoad(c.list, orders, len(orders) == 0, "Aún no tienes pedidos", err)
}

func (c *OrdersController) Open(orderID int) {
	c.mu.Lock()
	c.detail = Loading[domain.Order]()
	c.mu.Unlock()

	order, err := c.api.Orders().Get(c.ctx, orderID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.detail = Errored[domain.Order](failureMessage(err))
		return
	}
	c.detail = Success(order)
}
