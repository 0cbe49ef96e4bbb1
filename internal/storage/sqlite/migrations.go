package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. Column names follow the
// snake_case mapping used by the remote relational mirror.
const schema = `
CREATE TABLE IF NOT EXISTS clients (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    total_debt REAL NOT NULL,
    created_at TEXT NOT NULL,
    last_transaction_at TEXT NOT NULL,
    bottles_beer INTEGER NOT NULL DEFAULT 0,
    bottles_guinness INTEGER NOT NULL DEFAULT 0,
    bottles_malta INTEGER NOT NULL DEFAULT 0,
    bottles_coca INTEGER NOT NULL DEFAULT 0,
    bottles_chopines INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS credit_transactions (
    id TEXT PRIMARY KEY,
    client_id TEXT NOT NULL,
    description TEXT NOT NULL,
    amount REAL NOT NULL,
    date TEXT NOT NULL,
    type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    client_id TEXT NOT NULL,
    amount REAL NOT NULL,
    date TEXT NOT NULL,
    type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_categories (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    vat_percentage REAL NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_item_templates (
    id TEXT PRIMARY KEY,
    category_id TEXT NOT NULL,
    name TEXT NOT NULL,
    unit_price REAL NOT NULL,
    is_vat_nil INTEGER NOT NULL,
    is_vat_included INTEGER NOT NULL,
    vat_percentage REAL NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    id TEXT PRIMARY KEY,
    category_id TEXT NOT NULL,
    order_date TEXT NOT NULL,
    total_cost REAL NOT NULL,
    created_at TEXT NOT NULL,
    last_edited_at TEXT
);

CREATE TABLE IF NOT EXISTS order_items (
    id TEXT PRIMARY KEY,
    order_id TEXT NOT NULL,
    template_id TEXT NOT NULL,
    name TEXT NOT NULL,
    quantity REAL NOT NULL,
    unit_price REAL NOT NULL,
    is_vat_nil INTEGER NOT NULL,
    is_vat_included INTEGER NOT NULL,
    vat_percentage REAL NOT NULL,
    vat_amount REAL NOT NULL,
    total_price REAL NOT NULL,
    is_available INTEGER NOT NULL,
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS price_list_items (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    unit_price REAL NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS over_items (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    last_updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_credit_transactions_client_id ON credit_transactions(client_id);
CREATE INDEX IF NOT EXISTS idx_payments_client_id ON payments(client_id);
CREATE INDEX IF NOT EXISTS idx_order_item_templates_category_id ON order_item_templates(category_id);
CREATE INDEX IF NOT EXISTS idx_orders_category_id ON orders(category_id);
CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
