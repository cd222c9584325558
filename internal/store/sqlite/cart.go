package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"tuninggarage/internal/domain"
)

// CartItem is a cart row joined with its product. Subtotal is computed in
// the query so every read reflects the current product price.
type CartItem struct {
	ID           int
	ProductID    int
	ProductName  string
	ProductImage *string
	UnitPrice    float64
	Quantity     int
	Subtotal     float64
	Stock        int
}

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

// Items lists the user's cart in insertion order.
func (r *CartRepo) Items(ctx context.Context, userID int) ([]CartItem, error) {
	query := `
		SELECT ci.id, p.id, p.name, p.image_url, p.price, ci.quantity,
			p.price * ci.quantity, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = ?
		ORDER BY ci.added_at, ci.id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []CartItem
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(
			&it.ID,
			&it.ProductID,
			&it.ProductName,
			&it.ProductImage,
			&it.UnitPrice,
			&it.Quantity,
			&it.Subtotal,
			&it.Stock,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Add merges with an existing row for the same product. The combined
// quantity is checked against stock.
func (r *CartRepo) Add(ctx context.Context, userID, productID, quantity int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add to cart: %w", err)
	}
	defer tx.Rollback()

	var stock int
	var available bool
	err = tx.QueryRowContext(ctx, `SELECT stock, available FROM products WHERE id = ?`, productID).
		Scan(&stock, &available)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !available {
		return domain.ErrOutOfStock
	}

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity FROM cart_items WHERE user_id = ? AND product_id = ?`, userID, productID).
		Scan(&existing)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("check cart row: %w", err)
	}

	if existing+quantity > stock {
		return domain.ErrOutOfStock
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = quantity + excluded.quantity
	`, userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return tx.Commit()
}

// UpdateQuantity sets an absolute quantity, bounded by the product's stock.
func (r *CartRepo) UpdateQuantity(ctx context.Context, userID, cartItemID, quantity int) error {
	var stock int
	err := r.db.QueryRowContext(ctx, `
		SELECT p.stock FROM cart_items ci JOIN products p ON p.id = ci.product_id
		WHERE ci.id = ? AND ci.user_id = ?
	`, cartItemID, userID).Scan(&stock)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check cart item: %w", err)
	}
	if quantity < 1 || quantity > stock {
		return domain.ErrOutOfStock
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = ? WHERE id = ? AND user_id = ?`, quantity, cartItemID, userID)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	return nil
}

func (r *CartRepo) Remove(ctx context.Context, userID, cartItemID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = ? AND user_id = ?`, cartItemID, userID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CartRepo) Clear(ctx context.Context, userID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
