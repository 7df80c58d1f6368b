package httpapi

import (
	"context"
	"sync"

	"github.com/campuscart/campuscart/internal/catalog/domain"
	"github.com/campuscart/campuscart/internal/catalog/repository"
)

type mockProductRepository struct {
	m        sync.RWMutex
	products map[string]*domain.Product
	err      error
}

func newMockProductRepository(products ...*domain.Product) *mockProductRepository {
	repo := &mockProductRepository{products: make(map[string]*domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (m *mockProductRepository) ListProducts(context.Context, domain.Filter) ([]*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var products []*domain.Product
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

func (m *mockProductRepository) ListFeatured(context.Context) ([]*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var products []*domain.Product
	for _, p := range m.products {
		if p.IsFeatured {
			products = append(products, p)
		}
	}
	return products, nil
}

func (m *mockProductRepository) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProductRepository) CreateProduct(_ context.Context, p *domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepository) UpdateProduct(_ context.Context, p *domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepository) DeleteProduct(_ context.Context, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) IncrementViews(_ context.Context, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	p, ok := m.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Views++
	return nil
}

func (m *mockProductRepository) DeleteAllProducts(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.products = make(map[string]*domain.Product)
	return nil
}
