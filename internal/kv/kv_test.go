package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func createTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestAddGetDelete(t *testing.T) {
	db := createTestDB(t)
	ctx := context.Background()

	rec := Record{
		ID:      "tx1",
		Payload: []byte(`{"amount":-25000}`),
		Indexes: map[string]string{"accountId": "acc1", "categoryId": "cat1"},
	}
	if err := db.Add(ctx, "transactions", rec); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := db.Get(ctx, "transactions", "tx1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got.Payload) != `{"amount":-25000}` {
		t.Errorf("payload = %s", got.Payload)
	}

	// Same id in a different store is a different record.
	if _, err := db.Get(ctx, "transfers", "tx1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get from wrong store = %v, want ErrNotFound", err)
	}

	if err := db.Add(ctx, "transactions", rec); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate Add = %v, want ErrDuplicateID", err)
	}

	if err := db.Delete(ctx, "transactions", "tx1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := db.Get(ctx, "transactions", "tx1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
	if err := db.Delete(ctx, "transactions", "tx1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestAddLeavesExistingRecordUntouched(t *testing.T) {
	db := createTestDB(t)
	ctx := context.Background()

	orig := Record{ID: "tx1", Payload: []byte("v1"), Indexes: map[string]string{"categoryId": "cat1"}}
	if err := db.Add(ctx, "transactions", orig); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	dup := Record{ID: "tx1", Payload: []byte("v2"), Indexes: map[string]string{"categoryId": "cat2"}}
	if err := db.Add(ctx, "transactions", dup); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate Add = %v, want ErrDuplicateID", err)
	}

	got, err := db.Get(ctx, "transactions", "tx1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got.Payload) != "v1" {
		t.Errorf("payload = %s, want v1 (duplicate Add must not upsert)", got.Payload)
	}
	byIdx, err := db.GetByIndex(ctx, "transactions", "categoryId", "cat1")
	if err != nil {
		t.Fatalf("GetByIndex failed: %v", err)
	}
	if len(byIdx) != 1 {
		t.Errorf("GetByIndex(cat1) = %d records, want 1 (index must survive duplicate Add)", len(byIdx))
	}
}

func TestPutUpsertsAndReindexes(t *testing.T) {
	db := createTestDB(t)
	ctx := context.Background()

	rec := Record{ID: "tx1", Payload: []byte("v1"), Indexes: map[string]string{"categoryId": "cat1"}}
	if err := db.Put(ctx, "transactions", rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	rec.Payload = []byte("v2")
	rec.Indexes = map[string]string{"categoryId": "cat2"}
	if err := db.Put(ctx, "transactions", rec); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, err := db.Get(ctx, "transactions", "tx1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got.Payload) != "v2" {
		t.Errorf("payload = %s, want v2", got.Payload)
	}

	old, err := db.GetByIndex(ctx, "transactions", "categoryId", "cat1")
	if err != nil {
		t.Fatalf("GetByIndex failed: %v", err)
	}
	if len(old) != 0 {
		t.Errorf("stale index entry still matches: %d records", len(old))
	}
	cur, err := db.GetByIndex(ctx, "transactions", "categoryId", "cat2")
	if err != nil {
		t.Fatalf("GetByIndex failed: %v", err)
	}
	if len(cur) != 1 || cur[0].ID != "tx1" {
		t.Errorf("GetByIndex(cat2) = %v", cur)
	}
}

func TestGetAllAndClear(t *testing.T) {
	db := createTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec := Record{ID: fmt.Sprintf("c%d", i), Payload: []byte("x")}
		if err := db.Add(ctx, "categories", rec); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if err := db.Add(ctx, "accounts", Record{ID: "a1", Payload: []byte("y")}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	cats, err := db.GetAll(ctx, "categories")
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(cats) != 5 {
		t.Errorf("GetAll(categories) = %d records, want 5", len(cats))
	}

	if err := db.Clear(ctx, "categories"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	cats, err = db.GetAll(ctx, "categories")
	if err != nil {
		t.Fatalf("GetAll after Clear failed: %v", err)
	}
	if len(cats) != 0 {
		t.Errorf("GetAll after Clear = %d records, want 0", len(cats))
	}

	// Other stores untouched.
	accs, err := db.GetAll(ctx, "accounts")
	if err != nil {
		t.Fatalf("GetAll(accounts) failed: %v", err)
	}
	if len(accs) != 1 {
		t.Errorf("GetAll(accounts) = %d records, want 1", len(accs))
	}
}

func TestRunBatchCommits(t *testing.T) {
	db := createTestDB(t)
	ctx := context.Background()

	err := db.RunBatch(ctx, func(s Store) error {
		if err := s.Add(ctx, "accounts", Record{ID: "a1", Payload: []byte("x")}); err != nil {
			return err
		}
		return s.Add(ctx, "transactions", Record{ID: "t1", Payload: []byte("y")})
	})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	if _, err := db.Get(ctx, "accounts", "a1"); err != nil {
		t.Errorf("batched write not visible: %v", err)
	}
	if _, err := db.Get(ctx, "transactions", "t1"); err != nil {
		t.Errorf("batched write not visible: %v", err)
	}
}

func TestRunBatchRollsBackOnError(t *testing.T) {
	db := createTestDB(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := db.RunBatch(ctx, func(s Store) error {
		if err := s.Add(ctx, "accounts", Record{ID: "a1", Payload: []byte("x")}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("RunBatch = %v, want sentinel", err)
	}

	if _, err := db.Get(ctx, "accounts", "a1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("rolled-back write visible: %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := createTestDB(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}
