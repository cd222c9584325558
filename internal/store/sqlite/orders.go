package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tuninggarage/internal/domain"
)

// Order is a stored order with its detail lines.
type Order struct {
	ID             int
	UserID         int
	PlacedAt       time.Time
	Total          float64
	Status         string
	ShippingStreet string
	City           *string
	State          *string
	PostalCode     *string
	ContactPhone   string
	PaymentMethod  *string
	TrackingNumber *string
	Details        []OrderDetail
}

type OrderDetail struct {
	ProductID    int
	ProductName  string
	ProductImage *string
	Quantity     int
	UnitPrice    float64
	Subtotal     float64
}

// ShippingInput is what checkout needs beyond the cart itself.
type ShippingInput struct {
	Street        string
	City          *string
	State         *string
	PostalCode    *string
	ContactPhone  string
	PaymentMethod *string
}

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Checkout turns the user's cart into an order inside one transaction:
// stock is validated and decremented per line, detail rows are written at
// the prices current at purchase time, and the cart is emptied.
func (r *OrderRepo) Checkout(ctx context.Context, userID int, in ShippingInput, trackingNumber string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin checkout: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, p.price, p.stock
		FROM cart_items ci JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = ?
		ORDER BY ci.added_at, ci.id
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("read cart: %w", err)
	}

	type line struct {
		productID, quantity, stock int
		price                      float64
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity, &l.price, &l.stock); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("read cart: %w", err)
	}
	if len(lines) == 0 {
		return 0, domain.ErrInvalidInput
	}

	var total float64
	for _, l := range lines {
		if l.quantity > l.stock {
			return 0, domain.ErrOutOfStock
		}
		total += l.price * float64(l.quantity)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (user_id, total, status, shipping_street, city, state, postal_code,
			contact_phone, payment_method, tracking_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, userID, total, domain.OrderStatusPending, in.Street, in.City, in.State, in.PostalCode,
		in.ContactPhone, in.PaymentMethod, trackingNumber)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("order id: %w", err)
	}

	for _, l := range lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_details (order_id, product_id, quantity, unit_price)
			VALUES (?, ?, ?, ?)
		`, orderID, l.productID, l.quantity, l.price); err != nil {
			return 0, fmt.Errorf("insert order detail: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - ? WHERE id = ?`, l.quantity, l.productID); err != nil {
			return 0, fmt.Errorf("decrement stock: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID); err != nil {
		return 0, fmt.Errorf("empty cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit checkout: %w", err)
	}
	return int(orderID), nil
}

// ListMine returns the user's orders, newest first, details included.
func (r *OrderRepo) ListMine(ctx context.Context, userID int) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, placed_at, total, status, shipping_street, city, state,
			postal_code, contact_phone, payment_method, tracking_number
		FROM orders WHERE user_id = ? ORDER BY placed_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.PlacedAt, &o.Total, &o.Status, &o.ShippingStreet,
			&o.City, &o.State, &o.PostalCode, &o.ContactPhone, &o.PaymentMethod, &o.TrackingNumber,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		details, err := r.details(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Details = details
	}
	return orders, nil
}

// Get returns one order, scoped to its owner.
func (r *OrderRepo) Get(ctx context.Context, userID, orderID int) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, placed_at, total, status, shipping_street, city, state,
			postal_code, contact_phone, payment_method, tracking_number
		FROM orders WHERE id = ? AND user_id = ?
	`, orderID, userID).Scan(
		&o.ID, &o.UserID, &o.PlacedAt, &o.Total, &o.Status, &o.ShippingStreet,
		&o.City, &o.State, &o.PostalCode, &o.ContactPhone, &o.PaymentMethod, &o.TrackingNumber,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	o.Details, err = r.details(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) details(ctx context.Context, orderID int) ([]OrderDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT od.product_id, p.name, p.image_url, od.quantity, od.unit_price,
			od.unit_price * od.quantity
		FROM order_details od JOIN products p ON p.id = od.product_id
		WHERE od.order_id = ? ORDER BY od.id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	defer rows.Close()

	var details []OrderDetail
	for rows.Next() {
		var d OrderDetail
		if err := rows.Scan(&d.ProductID, &d.ProductName, &d.ProductImage, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
