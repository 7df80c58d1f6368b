package repository

import (
	"context"
	"errors"

	"github.com/campuscart/campuscart/internal/catalog/domain"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for catalog data operations.
// Consumers define this interface, not the SQLite implementation.
type ProductRepository interface {
	ListProducts(ctx context.Context, filter domain.Filter) ([]*domain.Product, error)
	ListFeatured(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	DeleteAllProducts(ctx context.Context) error
}
