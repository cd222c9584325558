// Package sqlite is the development backend's persistence layer.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite database with the given DSN.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

// Migrate creates the schema. Idempotent CREATE TABLE / CREATE INDEX only.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) UNIQUE NOT NULL,
			phone VARCHAR(30),
			avatar_url TEXT,
			hashed_password VARCHAR(255) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			image_url TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY,
			category_id INTEGER NOT NULL,
			name VARCHAR(200) NOT NULL,
			description TEXT,
			price DECIMAL(10,2) NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0,
			image_url TEXT,
			brand VARCHAR(100),
			model VARCHAR(100),
			year VARCHAR(10),
			available BOOLEAN DEFAULT TRUE,
			FOREIGN KEY (category_id) REFERENCES categories(id)
		);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id INTEGER PRIMARY KEY,
			user_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, product_id),
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (product_id) REFERENCES products(id)
		);`,
		`CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY,
			user_id INTEGER NOT NULL,
			placed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			total DECIMAL(10,2) NOT NULL,
			status VARCHAR(30) NOT NULL,
			shipping_street TEXT NOT NULL,
			city VARCHAR(100),
			state VARCHAR(100),
			postal_code VARCHAR(20),
			contact_phone VARCHAR(30) NOT NULL,
			payment_method VARCHAR(50),
			tracking_number VARCHAR(50),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS order_details (
			id INTEGER PRIMARY KEY,
			order_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price DECIMAL(10,2) NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id),
			FOREIGN KEY (product_id) REFERENCES products(id)
		);`,
		`CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY,
			user_id INTEGER NOT NULL,
			title VARCHAR(200),
			body TEXT,
			image_url TEXT,
			published_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS post_likes (
			user_id INTEGER NOT NULL,
			post_id INTEGER NOT NULL,
			liked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, post_id),
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (post_id) REFERENCES posts(id)
		);`,
		`CREATE TABLE IF NOT EXISTS comments (
			id INTEGER PRIMARY KEY,
			post_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			body TEXT NOT NULL,
			posted_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (post_id) REFERENCES posts(id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS listings (
			id INTEGER PRIMARY KEY,
			seller_id INTEGER NOT NULL,
			title VARCHAR(200) NOT NULL,
			description TEXT,
			image_url TEXT,
			starting_price DECIMAL(10,2) NOT NULL,
			brand VARCHAR(100),
			model VARCHAR(100),
			year INTEGER,
			mileage INTEGER,
			modifications TEXT,
			published_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			status VARCHAR(30) NOT NULL DEFAULT 'Activo',
			FOREIGN KEY (seller_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS bids (
			id INTEGER PRIMARY KEY,
			listing_id INTEGER NOT NULL,
			bidder_id INTEGER NOT NULL,
			amount DECIMAL(10,2) NOT NULL,
			message TEXT,
			placed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			accepted BOOLEAN DEFAULT FALSE,
			FOREIGN KEY (listing_id) REFERENCES listings(id),
			FOREIGN KEY (bidder_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS chats (
			id INTEGER PRIMARY KEY,
			listing_id INTEGER NOT NULL,
			buyer_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (listing_id, buyer_id),
			FOREIGN KEY (listing_id) REFERENCES listings(id),
			FOREIGN KEY (buyer_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id INTEGER PRIMARY KEY,
			chat_id INTEGER NOT NULL,
			sender_id INTEGER NOT NULL,
			content TEXT NOT NULL,
			sent_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (chat_id) REFERENCES chats(id),
			FOREIGN KEY (sender_id) REFERENCES users(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);`,
		`CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, placed_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_order_details_order ON order_details(order_id);`,
		`CREATE INDEX IF NOT EXISTS idx_posts_published ON posts(published_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id, posted_at ASC);`,
		`CREATE INDEX IF NOT EXISTS idx_bids_listing ON bids(listing_id, amount DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_chat ON chat_messages(chat_id, sent_at ASC);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Seed inserts the starter catalog when the database is empty.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	stmts := []string{
		`INSERT INTO categories (id, name, description) VALUES
			(1, 'Motor', 'Turbos, admisiones y componentes internos'),
			(2, 'Suspensión', 'Coilovers, barras y bujes'),
			(3, 'Escape', 'Sistemas de escape y headers'),
			(4, 'Frenos', 'Discos, pastillas y líneas de acero'),
			(5, 'Estética', 'Body kits, alerones y vinilos');`,
		`INSERT INTO products (category_id, name, description, price, stock, brand, model, year, available) VALUES
			(1, 'Turbo Garrett GT2860RS', 'Turbo bola rodamientos, hasta 360 hp', 18500.00, 4, 'Garrett', 'GT2860RS', '2023', TRUE),
			(1, 'Admisión de alto flujo', 'Filtro cónico lavable con tubería de aluminio', 2200.00, 15, 'K&N', 'Typhoon', NULL, TRUE),
			(2, 'Coilovers ajustables', 'Altura y rebote ajustables, 32 clicks', 14800.00, 6, 'Tein', 'Flex Z', NULL, TRUE),
			(3, 'Escape cat-back 3"', 'Acero inoxidable T304, salida doble', 9600.00, 8, 'Borla', 'S-Type', NULL, TRUE),
			(4, 'Kit de frenos deportivos', 'Discos perforados y pastillas cerámicas', 7300.00, 10, 'Brembo', 'Sport', NULL, TRUE),
			(5, 'Alerón GT de fibra de carbono', 'Montaje universal, 145 cm', 5400.00, 3, 'Voltex', 'Type 2', NULL, TRUE);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}
