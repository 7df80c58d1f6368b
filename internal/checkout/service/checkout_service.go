package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	cart "github.com/campuscart/campuscart/internal/cart/service"
	"github.com/campuscart/campuscart/internal/checkout/domain"
	"github.com/campuscart/campuscart/internal/checkout/repository"
	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

type CheckoutService struct {
	carts *cart.Manager
	repo  repository.OrderRepository
}

func NewCheckoutService(carts *cart.Manager, repo repository.OrderRepository) *CheckoutService {
	return &CheckoutService{
		carts: carts,
		repo:  repo,
	}
}

// Checkout turns the session's cart into an order and clears the cart.
// Payment is simulated as immediately successful; the cart is only cleared
// after the order has been persisted.
func (s *CheckoutService) Checkout(
	ctx context.Context,
	sessionID string,
	address domain.Address,
	paymentMethod string) (*domain.Order, error) {

	agg := s.carts.Cart(ctx, sessionID)
	snapshot := agg.Snapshot()
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]domain.OrderItem, len(snapshot.Items))
	for i, item := range snapshot.Items {
		items[i] = domain.OrderItem{
			ProductID:    item.ProductID,
			ProductTitle: item.Product.Title,
			Quantity:     item.Quantity,
			UnitPrice:    item.Product.Price,
		}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:              uuid.New(),
		SessionID:       sessionID,
		Items:           items,
		Status:          domain.OrderStatusConfirmed,
		Subtotal:        snapshot.Subtotal,
		Tax:             snapshot.Tax,
		Total:           snapshot.Total,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	agg.Clear(ctx)
	return order, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *CheckoutService) ListOrders(ctx context.Context, sessionID string) ([]*domain.Order, error) {
	return s.repo.ListOrdersBySession(ctx, sessionID)
}
