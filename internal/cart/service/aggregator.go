package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/campuscart/campuscart/internal/cart/domain"
	"github.com/campuscart/campuscart/internal/cart/store"
	catalog "github.com/campuscart/campuscart/internal/catalog/domain"
)

const storageKeyPrefix = "campuscart_cart"

// Aggregator owns the authoritative cart of one session. Mutations are
// serialized with a mutex, recompute the derived totals, and write the cart
// back to the store. Invalid input (non-positive quantities, unknown product
// IDs) is a defined no-op, never an error.
type Aggregator struct {
	mu       sync.Mutex
	kv       store.Store // nil when persistence is unavailable
	key      string
	cart     domain.Cart
	hydrated bool
}

func NewAggregator(kv store.Store, sessionID string) *Aggregator {
	return &Aggregator{
		kv:   kv,
		key:  fmt.Sprintf("%s:%s", storageKeyPrefix, sessionID),
		cart: domain.Empty(),
	}
}

// hydrate performs the one-time load of the persisted cart. A missing key,
// a malformed value, or a store error all leave the empty cart in place.
// No write may happen before hydrate has run, so a default empty cart can
// never overwrite a previously saved one.
func (a *Aggregator) hydrate(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.hydrated {
		return
	}
	a.hydrated = true

	if a.kv == nil {
		return
	}

	raw, err := a.kv.Get(ctx, a.key)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("cart load failed for %s: %v", a.key, err)
		return
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		log.Printf("discarding malformed saved cart for %s: %v", a.key, err)
		return
	}

	// Recompute rather than trust stored totals.
	cart.Recalculate()
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	a.cart = cart
}

// AddItem merges the product into the cart: an existing item has its
// quantity incremented, a new product gets a fresh item. A non-positive
// quantity increments by zero and never creates an item.
func (a *Aggregator) AddItem(ctx context.Context, product catalog.Product, quantity int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if i := a.cart.IndexOf(product.ID); i >= 0 {
		if quantity > 0 {
			a.cart.Items[i].Quantity += quantity
		}
	} else {
		if quantity <= 0 {
			return
		}
		a.cart.Items = append(a.cart.Items, domain.CartItem{
			ProductID: product.ID,
			Product:   product,
			Quantity:  quantity,
			AddedAt:   time.Now().UTC(),
		})
	}

	a.cart.Recalculate()
	a.persist(ctx)
}

// RemoveItem deletes the item for the given product. Unknown IDs leave the
// cart untouched.
func (a *Aggregator) RemoveItem(ctx context.Context, productID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.removeLocked(ctx, productID)
}

// UpdateQuantity sets the exact quantity of an existing item. A quantity of
// zero or less removes the item. Unknown IDs leave the cart untouched.
func (a *Aggregator) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if quantity <= 0 {
		a.removeLocked(ctx, productID)
		return
	}

	i := a.cart.IndexOf(productID)
	if i < 0 {
		return
	}

	a.cart.Items[i].Quantity = quantity
	a.cart.Recalculate()
	a.persist(ctx)
}

// Clear empties the cart and resets all derived totals.
func (a *Aggregator) Clear(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cart = domain.Empty()
	a.persist(ctx)
}

// ItemCount returns the derived total item count without recomputation.
func (a *Aggregator) ItemCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.TotalItems
}

// Snapshot returns a copy of the current cart for readers.
func (a *Aggregator) Snapshot() domain.Cart {
	a.mu.Lock()
	defer a.mu.Unlock()

	snapshot := a.cart
	snapshot.Items = make([]domain.CartItem, len(a.cart.Items))
	copy(snapshot.Items, a.cart.Items)
	return snapshot
}

func (a *Aggregator) removeLocked(ctx context.Context, productID string) {
	i := a.cart.IndexOf(productID)
	if i < 0 {
		return
	}

	a.cart.Items = append(a.cart.Items[:i], a.cart.Items[i+1:]...)
	a.cart.Recalculate()
	a.persist(ctx)
}

// persist writes the cart back to the store. Failures are logged and
// swallowed; no mutation ever surfaces a persistence error to its caller.
func (a *Aggregator) persist(ctx context.Context) {
	if !a.hydrated || a.kv == nil {
		return
	}

	raw, err := json.Marshal(a.cart)
	if err != nil {
		log.Printf("cart marshal failed for %s: %v", a.key, err)
		return
	}

	if err := a.kv.Set(ctx, a.key, string(raw)); err != nil {
		log.Printf("cart persist failed for %s: %v", a.key, err)
	}
}
