package repository

import (
	"context"
	"errors"

	"github.com/campuscart/campuscart/internal/checkout/domain"
	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersBySession(ctx context.Context, sessionID string) ([]*domain.Order, error)
}
