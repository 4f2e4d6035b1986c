package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	perrors "github.com/abgdnv/inventory/internal/errors"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

const (
	sqliteListAll = `SELECT id, name, price, quantity FROM products ORDER BY id DESC`
	sqliteInsert  = `INSERT INTO products (name, price, quantity) VALUES (?, ?, ?)`
	sqliteUpdate  = `UPDATE products SET name = ?, price = ?, quantity = ? WHERE id = ?`
	sqliteDelete  = `DELETE FROM products WHERE id = ?`
)

// SQLiteStore implements ProductStore on an on-device SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the SQLite database at path.
// The schema is created by Initialize.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, perrors.NewStorageFailure("open", errors.New("sqlite path is empty"))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, perrors.NewStorageFailure("open", fmt.Errorf("create dirs: %w", err))
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, perrors.NewStorageFailure("open", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Initialize applies the embedded schema migrations.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return perrors.NewStorageFailure("initialize", err)
	}
	if err := migrateSQLite(s.db); err != nil {
		return perrors.NewStorageFailure("initialize", err)
	}
	return nil
}

// ListAll retrieves all rows, most recent first.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, sqliteListAll)
	if err != nil {
		return nil, perrors.NewStorageFailure("list", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]Record, 0)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.Price, &r.Quantity); err != nil {
			return nil, perrors.NewStorageFailure("list", fmt.Errorf("scan: %w", err))
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, perrors.NewStorageFailure("list", err)
	}
	return records, nil
}

// Insert appends a new row; SQLite assigns the id.
func (s *SQLiteStore) Insert(ctx context.Context, name string, price float64, quantity int64) error {
	if _, err := s.db.ExecContext(ctx, sqliteInsert, name, price, quantity); err != nil {
		return perrors.NewStorageFailure("insert", err)
	}
	return nil
}

// Update replaces the mutable fields of the row matching id.
// Returns ErrProductNotFound if no row matches.
func (s *SQLiteStore) Update(ctx context.Context, id int64, name string, price float64, quantity int64) error {
	res, err := s.db.ExecContext(ctx, sqliteUpdate, name, price, quantity, id)
	if err != nil {
		return perrors.NewStorageFailure("update", err)
	}
	return affected("update", res)
}

// Delete removes the row matching id.
// Returns ErrProductNotFound if no row matches.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, sqliteDelete, id)
	if err != nil {
		return perrors.NewStorageFailure("delete", err)
	}
	return affected("delete", res)
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

func affected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return perrors.NewStorageFailure(op, err)
	}
	if n == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}
