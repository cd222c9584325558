package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Category is a stored product category.
type Category struct {
	ID          int
	Name        string
	Description *string
	ImageURL    *string
}

// Product is a stored catalog row joined with its category name.
type Product struct {
	ID           int
	CategoryID   int
	CategoryName string
	Name         string
	Description  *string
	Price        float64
	Stock        int
	ImageURL     *string
	Brand        *string
	Model        *string
	Year         *string
	Available    bool
}

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) Categories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, image_url FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const productColumns = `
	p.id, p.category_id, c.name, p.name, p.description, p.price, p.stock,
	p.image_url, p.brand, p.model, p.year, p.available AND p.stock > 0
`

// Products lists the catalog, optionally filtered to one category.
func (r *CatalogRepo) Products(ctx context.Context, categoryID *int) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p JOIN categories c ON c.id = p.category_id`
	args := []any{}
	if categoryID != nil {
		query += ` WHERE p.category_id = ?`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY p.id`
	return r.queryProducts(ctx, query, args...)
}

func (r *CatalogRepo) Product(ctx context.Context, id int) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p JOIN categories c ON c.id = p.category_id WHERE p.id = ?`
	products, err := r.queryProducts(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// Search matches name, description and brand case-insensitively.
func (r *CatalogRepo) Search(ctx context.Context, q string) ([]Product, error) {
	pattern := "%" + q + "%"
	query := `SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.name LIKE ? COLLATE NOCASE
			OR p.description LIKE ? COLLATE NOCASE
			OR p.brand LIKE ? COLLATE NOCASE
		ORDER BY p.id`
	return r.queryProducts(ctx, query, pattern, pattern, pattern)
}

func (r *CatalogRepo) queryProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.CategoryID,
			&p.CategoryName,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.Stock,
			&p.ImageURL,
			&p.Brand,
			&p.Model,
			&p.Year,
			&p.Available,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
