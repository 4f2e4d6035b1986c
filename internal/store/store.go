// Package store provides the persistence contract for inventory products.
package store

import "context"

// ProductStore is an interface for product storage operations.
// It abstracts the underlying storage engine (SQLite on device, PostgreSQL, or in-memory).
// Every engine error is returned wrapped in a perrors.StorageFailure.
type ProductStore interface {
	// Initialize idempotently ensures the products table exists.
	// Safe to call on every application start.
	Initialize(ctx context.Context) error

	// ListAll returns every stored row ordered by id descending.
	// Rows are loosely typed; callers decode them with Decode.
	ListAll(ctx context.Context) ([]Record, error)

	// Insert appends a new product. The store assigns the id.
	Insert(ctx context.Context, name string, price float64, quantity int64) error

	// Update replaces name, price and quantity of the row matching id.
	// Returns ErrProductNotFound if no row matches.
	Update(ctx context.Context, id int64, name string, price float64, quantity int64) error

	// Delete removes the row matching id.
	// Returns ErrProductNotFound if no row matches.
	Delete(ctx context.Context, id int64) error

	// Close releases the storage engine handle.
	Close() error
}
