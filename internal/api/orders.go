package api

import (
	"context"
	"fmt"
	"net/http"

	"tuninggarage/internal/domain"
)

// OrdersClient lists and creates the caller's orders.
type OrdersClient struct {
	client *Client
}

type CreateOrderRequest struct {
	ShippingStreet string  `json:"direccionEnvio"`
	City           *string `json:"ciudad,omitempty"`
	State          *string `json:"estado,omitempty"`
	PostalCode     *string `json:"codigoPostal,omitempty"`
	ContactPhone   string  `json:"telefonoContacto"`
	PaymentMethod  *string `json:"metodoPago,omitempty"`
}

func (o *OrdersClient) ListMine(ctx context.Context) ([]domain.Order, error) {
	return doEnvelope[[]domain.Order](ctx, o.client, http.MethodGet, "Orders", nil)
}

func (o *OrdersClient) Get(ctx context.Context, orderID int) (domain.Order, error) {
	return doEnvelope[domain.Order](ctx, o.client, http.MethodGet, fmt.Sprintf("Orders/%d", orderID), nil)
}

// Create checks out the current cart against the given shipping details.
func (o *OrdersClient) Create(ctx context.Context, req CreateOrderRequest) (domain.Order, error) {
	return doEnvelope[domain.Order](ctx, o.client, http.MethodPost, "Orders", req)
}
