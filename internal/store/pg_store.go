package store

import (
	"context"

	perrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgListAll = `SELECT id, name, price, quantity FROM products ORDER BY id DESC`
	pgInsert  = `INSERT INTO products (name, price, quantity) VALUES ($1, $2, $3)`
	pgUpdate  = `UPDATE products SET name = $2, price = $3, quantity = $4 WHERE id = $1`
	pgDelete  = `DELETE FROM products WHERE id = $1`
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db  *pgxpool.Pool
	url string
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
// url is used by Initialize to run schema migrations.
func NewPgStore(dbp *pgxpool.Pool, url string) *PgStore {
	return &PgStore{
		db:  dbp,
		url: url,
	}
}

// Initialize applies the embedded schema migrations.
func (p *PgStore) Initialize(ctx context.Context) error {
	if err := p.db.Ping(ctx); err != nil {
		return perrors.NewStorageFailure("initialize", err)
	}
	if err := migratePostgres(p.url); err != nil {
		return perrors.NewStorageFailure("initialize", err)
	}
	return nil
}

// ListAll retrieves all rows, most recent first.
func (p *PgStore) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := p.db.Query(ctx, pgListAll)
	if err != nil {
		return nil, perrors.NewStorageFailure("list", err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Record, error) {
		var r Record
		err := row.Scan(&r.ID, &r.Name, &r.Price, &r.Quantity)
		return r, err
	})
	if err != nil {
		return nil, perrors.NewStorageFailure("list", err)
	}
	return records, nil
}

// Insert adds a new product; PostgreSQL assigns the id from its identity sequence.
func (p *PgStore) Insert(ctx context.Context, name string, price float64, quantity int64) error {
	if _, err := p.db.Exec(ctx, pgInsert, name, price, quantity); err != nil {
		return perrors.NewStorageFailure("insert", err)
	}
	return nil
}

// Update modifies an existing product's details.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Update(ctx context.Context, id int64, name string, price float64, quantity int64) error {
	tag, err := p.db.Exec(ctx, pgUpdate, id, name, price, quantity)
	if err != nil {
		return perrors.NewStorageFailure("update", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

// Delete removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Delete(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, pgDelete, id)
	if err != nil {
		return perrors.NewStorageFailure("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

// Close closes the connection pool.
func (p *PgStore) Close() error {
	p.db.Close()
	return nil
}
