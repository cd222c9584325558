package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"tuninggarage/internal/domain"
)

// ProductsClient reads the catalog.
type ProductsClient struct {
	client *Client
}

func (p *ProductsClient) Categories(ctx context.Context) ([]domain.Category, error) {
	return doEnvelope[[]domain.Category](ctx, p.client, http.MethodGet, "Products/categories", nil)
}

// List returns all products, or only those in categoryID when it is non-nil.
func (p *ProductsClient) List(ctx context.Context, categoryID *int) ([]domain.Product, error) {
	path := "Products"
	if categoryID != nil {
		path = fmt.Sprintf("Products?categoryId=%d", *categoryID)
	}
	return doEnvelope[[]domain.Product](ctx, p.client, http.MethodGet, path, nil)
}

func (p *ProductsClient) Get(ctx context.Context, productID int) (domain.Product, error) {
	return doEnvelope[domain.Product](ctx, p.client, http.MethodGet, fmt.Sprintf("Products/%d", productID), nil)
}

func (p *ProductsClient) Search(ctx context.Context, query string) ([]domain.Product, error) {
	path := "Products/search?query=" + url.QueryEscape(query)
	return doEnvelope[[]domain.Product](ctx, p.client, http.MethodGet, path, nil)
}
