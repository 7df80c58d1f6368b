package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campuscart/campuscart/internal/checkout/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) OrderRepository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	query := `INSERT INTO orders (id, session_id, status, items, subtotal, tax, total,
		shipping_address, payment_method, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		order.ID.String(),
		order.SessionID,
		string(order.Status),
		string(itemsJSON),
		order.Subtotal.String(),
		order.Tax.String(),
		order.Total.String(),
		string(addressJSON),
		order.PaymentMethod,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (r *sqliteRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT id, session_id, status, items, subtotal, tax, total,
		shipping_address, payment_method, created_at, updated_at
		FROM orders WHERE id = ?`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

func (r *sqliteRepository) ListOrdersBySession(ctx context.Context, sessionID string) ([]*domain.Order, error) {
	query := `SELECT id, session_id, status, items, subtotal, tax, total,
		shipping_address, payment_method, created_at, updated_at
		FROM orders WHERE session_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var id, status, itemsJSON, subtotal, tax, total, addressJSON string

	err := row.Scan(
		&id,
		&order.SessionID,
		&status,
		&itemsJSON,
		&subtotal,
		&tax,
		&total,
		&addressJSON,
		&order.PaymentMethod,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid stored order id %q: %w", id, err)
	}
	order.Status = domain.OrderStatus(status)

	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return nil, fmt.Errorf("invalid stored order items: %w", err)
	}
	if err := json.Unmarshal([]byte(addressJSON), &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("invalid stored shipping address: %w", err)
	}

	if order.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, fmt.Errorf("invalid stored subtotal %q: %w", subtotal, err)
	}
	if order.Tax, err = decimal.NewFromString(tax); err != nil {
		return nil, fmt.Errorf("invalid stored tax %q: %w", tax, err)
	}
	if order.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("invalid stored total %q: %w", total, err)
	}

	return &order, nil
}
