package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mesaesabores/mesa-backend/internal/order"
)

// OrderRepository defines the interface for the order store.
type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	GetByID(ctx context.Context, id string) (*order.Order, error)
	// List returns orders newest first, optionally filtered by status
	// (empty status means all).
	List(ctx context.Context, status order.Status) ([]order.Order, error)
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
	UpdateStatus(ctx context.Context, id string, status order.Status) error
}

// InMemoryOrderRepository implements OrderRepository with in-memory storage.
// Used when no DATABASE_URL is configured and throughout the tests.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

// NewInMemoryOrderRepository creates an empty in-memory order store.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]*order.Order),
	}
}

// Create assigns the store-owned fields (id, creation time) and records
// the order.
func (r *InMemoryOrderRepository) Create(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	stored := *o
	stored.Items = make([]order.Item, len(o.Items))
	copy(stored.Items, o.Items)
	r.orders[o.ID] = &stored

	return nil
}

// GetByID returns the order or order.ErrOrderNotFound.
func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}

	o := *stored
	o.Items = make([]order.Item, len(stored.Items))
	copy(o.Items, stored.Items)
	return &o, nil
}

// List returns orders newest first, optionally filtered by status.
func (r *InMemoryOrderRepository) List(ctx context.Context, status order.Status) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]order.Order, 0, len(r.orders))
	for _, stored := range r.orders {
		if status != "" && stored.Status != status {
			continue
		}
		o := *stored
		o.Items = make([]order.Item, len(stored.Items))
		copy(o.Items, stored.Items)
		orders = append(orders, o)
	}

	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

// CountByStatus returns the number of orders per status. Statuses with
// no orders are absent from the map.
func (r *InMemoryOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[order.Status]int)
	for _, stored := range r.orders {
		counts[stored.Status]++
	}
	return counts, nil
}

// UpdateStatus sets the stored status. The prior status is retained on
// any failure; unknown ids return order.ErrOrderNotFound.
func (r *InMemoryOrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	if !status.Valid() {
		return order.ErrUnknownStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[id]
	if !ok {
		return order.ErrOrderNotFound
	}

	stored.Status = status
	return nil
}
