package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Manager keeps one cart per client session, keyed by an opaque cart id.
// Carts live for the lifetime of the process; nothing is persisted.
type Manager struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewManager creates an empty cart registry.
func NewManager() *Manager {
	return &Manager{
		carts: make(map[string]*Cart),
	}
}

// Create registers a new empty cart and returns its id.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.carts[id] = New()
	return id
}

// Get returns the cart with the given id.
func (m *Manager) Get(id string) (*Cart, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.carts[id]
	return c, ok
}

// Len reports how many carts are registered.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.carts)
}
