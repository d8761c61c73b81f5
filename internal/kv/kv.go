// Package kv provides the persistence primitive: named object stores over
// SQLite with get/put/delete/index-lookup operations. Payloads are opaque
// bytes; callers store plaintext metadata or encrypted envelopes. Index
// values are plaintext and must never contain secret material.
package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
)

// Store errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("duplicate record id")
)

// Record is a single entry in an object store. Indexes maps index names to
// the value this record should be findable under.
type Record struct {
	Indexes map[string]string
	ID      string
	Payload []byte
}

// Store is the object-store surface. Both DB (auto-commit) and the batch
// handed to RunBatch implement it.
type Store interface {
	Get(ctx context.Context, store, id string) (*Record, error)
	GetAll(ctx context.Context, store string) ([]Record, error)
	GetByIndex(ctx context.Context, store, index, value string) ([]Record, error)
	Add(ctx context.Context, store string, rec Record) error
	Put(ctx context.Context, store string, rec Record) error
	Delete(ctx context.Context, store, id string) error
	Clear(ctx context.Context, store string) error
}

// DB is a SQLite-backed Store. Operations outside RunBatch auto-commit.
type DB struct {
	ops
	db     *sql.DB
	dbPath string
}

// Open opens (creating if needed) the database at dbPath.
func Open(dbPath string) (*DB, error) {
	if dbPath == "" {
		return nil, errors.New("dbPath cannot be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{ops: ops{q: db}, db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// RunBatch executes fn against a Store whose writes commit or roll back as
// one unit. The multiple record writes of a logical ledger operation go
// through here so a failure partway leaves nothing applied. If fn fails and
// the rollback itself also fails, the error is a *PartialFailureError and
// reconciliation is the documented recovery path.
func (d *DB) RunBatch(ctx context.Context, fn func(Store) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch: %w", err)
	}

	if err := fn(&batch{ops{q: tx}}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return &PartialFailureError{Err: err, RollbackErr: rbErr}
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// PartialFailureError reports an operation that failed after some of its
// writes may have been applied, because the compensating rollback failed
// too. The store should be reconciled before further mutation.
type PartialFailureError struct {
	Err         error
	RollbackErr error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("operation failed and rollback failed, reconciliation required: %v (rollback: %v)", e.Err, e.RollbackErr)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// batch is the Store handed to RunBatch callbacks.
type batch struct {
	ops
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type ops struct {
	q querier
}

// Get returns the record with the given id, or ErrNotFound.
func (o ops) Get(ctx context.Context, store, id string) (*Record, error) {
	rec := Record{ID: id}
	err := o.q.QueryRowContext(ctx,
		`SELECT payload FROM records WHERE store = ? AND id = ?`, store, id,
	).Scan(&rec.Payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, store, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return &rec, nil
}

// GetAll returns every record in the store.
func (o ops) GetAll(ctx context.Context, store string) ([]Record, error) {
	rows, err := o.q.QueryContext(ctx,
		`SELECT id, payload FROM records WHERE store = ? ORDER BY id`, store)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// GetByIndex returns every record whose named index equals value.
func (o ops) GetByIndex(ctx context.Context, store, index, value string) ([]Record, error) {
	rows, err := o.q.QueryContext(ctx, `
		SELECT r.id, r.payload
		FROM records r
		JOIN record_index i ON i.store = r.store AND i.id = r.id
		WHERE r.store = ? AND i.name = ? AND i.value = ?
		ORDER BY r.id`, store, index, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query index %s: %w", index, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Add inserts a new record, failing with ErrDuplicateID if the id exists.
// The primary key enforces the invariant; an existing record is never
// touched.
func (o ops) Add(ctx context.Context, store string, rec Record) error {
	if rec.ID == "" {
		return errors.New("record id cannot be empty")
	}
	if _, err := o.q.ExecContext(ctx,
		`INSERT INTO records (store, id, payload) VALUES (?, ?, ?)`,
		store, rec.ID, rec.Payload); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateID, store, rec.ID)
		}
		return fmt.Errorf("failed to write record: %w", err)
	}
	return o.writeIndexes(ctx, store, rec)
}

// Put upserts a record, replacing its index entries.
func (o ops) Put(ctx context.Context, store string, rec Record) error {
	if rec.ID == "" {
		return errors.New("record id cannot be empty")
	}
	if _, err := o.q.ExecContext(ctx, `
		INSERT INTO records (store, id, payload) VALUES (?, ?, ?)
		ON CONFLICT(store, id) DO UPDATE SET payload = excluded.payload`,
		store, rec.ID, rec.Payload); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return o.writeIndexes(ctx, store, rec)
}

func (o ops) writeIndexes(ctx context.Context, store string, rec Record) error {
	if _, err := o.q.ExecContext(ctx,
		`DELETE FROM record_index WHERE store = ? AND id = ?`, store, rec.ID); err != nil {
		return fmt.Errorf("failed to clear index entries: %w", err)
	}
	for name, value := range rec.Indexes {
		if _, err := o.q.ExecContext(ctx,
			`INSERT INTO record_index (store, name, value, id) VALUES (?, ?, ?, ?)`,
			store, name, value, rec.ID); err != nil {
			return fmt.Errorf("failed to write index entry %s: %w", name, err)
		}
	}
	return nil
}

// Delete removes a record and its index entries. Missing ids are ErrNotFound.
func (o ops) Delete(ctx context.Context, store, id string) error {
	res, err := o.q.ExecContext(ctx,
		`DELETE FROM records WHERE store = ? AND id = ?`, store, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, store, id)
	}
	if _, err := o.q.ExecContext(ctx,
		`DELETE FROM record_index WHERE store = ? AND id = ?`, store, id); err != nil {
		return fmt.Errorf("failed to delete index entries: %w", err)
	}
	return nil
}

// Clear removes every record in the store.
func (o ops) Clear(ctx context.Context, store string) error {
	if _, err := o.q.ExecContext(ctx,
		`DELETE FROM record_index WHERE store = ?`, store); err != nil {
		return fmt.Errorf("failed to clear index entries: %w", err)
	}
	if _, err := o.q.ExecContext(ctx,
		`DELETE FROM records WHERE store = ?`, store); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var recs []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Payload); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return recs, nil
}
