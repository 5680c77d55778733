package storage

import "database/sql"

// EnsureSchema creates the tables the storefront needs. Timestamps are
// stored as RFC3339 text.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			category_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			ord INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price_cents BIGINT NOT NULL CHECK (price_cents >= 0),
			stock_quantity INT NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
			category_id INT REFERENCES categories(category_id),
			image_key TEXT,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			version INT NOT NULL DEFAULT 1,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			token TEXT PRIMARY KEY,
			customer_id INT NOT NULL REFERENCES customers(customer_id),
			expires_at TEXT NOT NULL,
			revoked_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS addresses (
			address_id SERIAL PRIMARY KEY,
			customer_id INT NOT NULL REFERENCES customers(customer_id),
			name TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS baskets (
			basket_id SERIAL PRIMARY KEY,
			customer_id INT REFERENCES customers(customer_id),
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS basket_items (
			item_id SERIAL PRIMARY KEY,
			basket_id INT NOT NULL REFERENCES baskets(basket_id) ON DELETE CASCADE,
			product_id INT NOT NULL REFERENCES products(product_id),
			quantity INT NOT NULL CHECK (quantity >= 1),
			UNIQUE (basket_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			public_id TEXT NOT NULL UNIQUE,
			customer_id INT NOT NULL REFERENCES customers(customer_id),
			status TEXT NOT NULL,
			total_cents BIGINT NOT NULL,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			item_id SERIAL PRIMARY KEY,
			public_id TEXT NOT NULL,
			order_id INT NOT NULL REFERENCES orders(order_id),
			product_id INT NOT NULL,
			product_name TEXT NOT NULL,
			quantity INT NOT NULL,
			unit_price_cents BIGINT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
