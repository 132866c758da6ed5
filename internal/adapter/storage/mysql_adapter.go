package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cart_slots (
		slot_key   VARCHAR(128) NOT NULL PRIMARY KEY,
		payload    JSON NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id    BIGINT NOT NULL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		price DOUBLE NOT NULL,
		image VARCHAR(1024) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS stock (
		product_id BIGINT NOT NULL PRIMARY KEY,
		amount     INT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
}

// MySQLAdapter stores the cart snapshot as one row of cart_slots and
// serves the catalog from the products and stock tables.
type MySQLAdapter struct {
	db      *sql.DB
	slotKey string
}

func NewMySQLAdapter(db *sql.DB, slotKey string) *MySQLAdapter {
	if slotKey == "" {
		slotKey = DefaultCartSlotKey
	}
	return &MySQLAdapter{db: db, slotKey: slotKey}
}

// EnsureSchema creates the tables used by the adapter when they are missing.
func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (m *MySQLAdapter) LoadCart(ctx context.Context) (domain.Cart, error) {
	var payload []byte
	err := m.db.QueryRowContext(ctx, `
		SELECT payload FROM cart_slots WHERE slot_key = ?`, m.slotKey,
	).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("query cart slot: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart slot: %w", err)
	}
	return cart, nil
}

func (m *MySQLAdapter) SaveCart(ctx context.Context, cart domain.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	_, err = m.db.ExecContext(ctx, `
		INSERT INTO cart_slots (slot_key, payload) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload)`,
		m.slotKey, payload,
	)
	if err != nil {
		return fmt.Errorf("upsert cart slot: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, title, price, image FROM products WHERE id = ?`, productID,
	).Scan(&p.ID, &p.Title, &p.Price, &p.Image)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (m *MySQLAdapter) GetStock(ctx context.Context, productID int64) (*domain.Stock, error) {
	s := domain.Stock{ID: productID}
	err := m.db.QueryRowContext(ctx, `
		SELECT amount FROM stock WHERE product_id = ?`, productID,
	).Scan(&s.Amount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}
	return &s, nil
}

func (m *MySQLAdapter) SetProduct(ctx context.Context, p domain.Product) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO products (id, title, price, image) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE title = VALUES(title), price = VALUES(price), image = VALUES(image)`,
		p.ID, p.Title, p.Price, p.Image,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) SetStock(ctx context.Context, productID int64, amount int) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO stock (product_id, amount) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE amount = VALUES(amount)`,
		productID, amount,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}
