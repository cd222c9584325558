package api

import (
	"context"
	"fmt"
	"net/http"

	"tuninggarage/internal/domain"
)

// CartClient manages the server-side cart. All totals are computed by the
// backend; mutations return a confirmation message only.
type CartClient struct {
	client *Client
}

type AddToCartRequest struct {
	ProductID int `json:"productID"`
	Quantity  int `json:"cantidad"`
}

func (c *CartClient) Get(ctx context.Context) (domain.Cart, error) {
	return doEnvelope[domain.Cart](ctx, c.client, http.MethodGet, "Cart", nil)
}

func (c *CartClient) Add(ctx context.Context, productID, quantity int) (string, error) {
	return doEnvelope[string](ctx, c.client, http.MethodPost, "Cart", AddToCartRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
}

// UpdateQuantity sends the new quantity as a bare JSON number, matching the
// backend contract.
func (c *CartClient) UpdateQuantity(ctx context.Context, cartItemID, quantity int) (string, error) {
	return doEnvelope[string](ctx, c.client, http.MethodPut, fmt.Sprintf("Cart/%d", cartItemID), quantity)
}

func (c *CartClient) Remove(ctx context.Context, cartItemID int) (string, error) {
	return doEnvelope[string](ctx, c.client, http.MethodDelete, fmt.Sprintf("Cart/%d", cartItemID), nil)
}

func (c *CartClient) Clear(ctx context.Context) (string, error) {
	return doEnvelope[string](ctx, c.client, http.MethodDelete, "Cart/clear", nil)
}
