package store

import (
	"context"
	"slices"
	"sync"

	perrors "github.com/abgdnv/inventory/internal/errors"
)

// InMemory implements ProductStore using an in-memory map.
// Ids are assigned from a counter and never reused.
type InMemory struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
}

// NewInMemoryStore creates a new instance of ProductStore backed by memory.
func NewInMemoryStore() *InMemory {
	return &InMemory{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// Initialize is a no-op; the map is created by the constructor.
func (s *InMemory) Initialize(_ context.Context) error {
	return nil
}

// ListAll retrieves all products, most recent first.
func (s *InMemory) ListAll(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	slices.Reverse(ids)

	list := make([]Record, 0, len(ids))
	for _, id := range ids {
		p := s.products[id]
		list = append(list, Record{ID: p.ID, Name: p.Name, Price: p.Price, Quantity: p.Quantity})
	}
	return list, nil
}

// Insert stores a new product under the next id.
func (s *InMemory) Insert(_ context.Context, name string, price float64, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:       s.nextID,
		Name:     name,
		Price:    price,
		Quantity: quantity,
	}
	s.nextID++
	s.products[product.ID] = product
	return nil
}

// Update replaces the mutable fields of the product with the given id.
func (s *InMemory) Update(_ context.Context, id int64, name string, price float64, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return perrors.ErrProductNotFound
	}
	s.products[id] = Product{ID: id, Name: name, Price: price, Quantity: quantity}
	return nil
}

// Delete deletes a product by its ID.
func (s *InMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return perrors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

// Close is a no-op.
func (s *InMemory) Close() error {
	return nil
}
