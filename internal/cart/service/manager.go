package service

import (
	"context"
	"sync"

	"github.com/campuscart/campuscart/internal/cart/store"
	"golang.org/x/sync/singleflight"
)

// Manager hands out one hydrated Aggregator per session. Concurrent first
// requests for the same session share a single hydration through
// singleflight, so the persisted cart is loaded at most once.
type Manager struct {
	kv    store.Store // nil when persistence is unavailable
	mu    sync.RWMutex
	carts map[string]*Aggregator
	sfg   singleflight.Group
}

func NewManager(kv store.Store) *Manager {
	return &Manager{
		kv:    kv,
		carts: make(map[string]*Aggregator),
	}
}

// Cart returns the aggregator for the session, hydrating it on first access.
func (m *Manager) Cart(ctx context.Context, sessionID string) *Aggregator {
	m.mu.RLock()
	agg, ok := m.carts[sessionID]
	m.mu.RUnlock()
	if ok {
		return agg
	}

	v, _, _ := m.sfg.Do(sessionID, func() (interface{}, error) {
		m.mu.RLock()
		existing, ok := m.carts[sessionID]
		m.mu.RUnlock()
		if ok {
			return existing, nil
		}

		created := NewAggregator(m.kv, sessionID)
		created.hydrate(ctx)

		m.mu.Lock()
		m.carts[sessionID] = created
		m.mu.Unlock()
		return created, nil
	})

	return v.(*Aggregator)
}
