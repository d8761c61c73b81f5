package store

import (
	"context"
	"log/slog"
	"sort"

	"github.com/nostrgamer/bitcoinbudget/internal/kv"
	"github.com/nostrgamer/bitcoinbudget/internal/model"
	"github.com/nostrgamer/bitcoinbudget/internal/vault"
)

// CategoryStore persists Category records.
type CategoryStore struct {
	s    kv.Store
	sess *vault.Session
}

// Create inserts a new category.
func (cs *CategoryStore) Create(ctx context.Context, cat *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(cat); err != nil {
		return err
	}
	rec, err := seal(cs.sess, cat.ID, cat, nil)
	if err != nil {
		return err
	}
	if err := cs.s.Add(ctx, StoreCategories, rec); err != nil {
		return err
	}
	slog.Debug("created category", "id", cat.ID)
	return nil
}

// Get returns the category with the given id.
func (cs *CategoryStore) Get(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	rec, err := cs.s.Get(ctx, StoreCategories, id)
	if err != nil {
		return nil, err
	}
	var cat model.Category
	if err := open(cs.sess, rec, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// List returns all categories sorted by name.
func (cs *CategoryStore) List(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	recs, err := cs.s.GetAll(ctx, StoreCategories)
	if err != nil {
		return nil, err
	}
	cats := make([]model.Category, 0, len(recs))
	for i := range recs {
		var cat model.Category
		if err := open(cs.sess, &recs[i], &cat); err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}

// Put upserts a category.
func (cs *CategoryStore) Put(ctx context.Context, cat *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(cat); err != nil {
		return err
	}
	rec, err := seal(cs.sess, cat.ID, cat, nil)
	if err != nil {
		return err
	}
	return cs.s.Put(ctx, StoreCategories, rec)
}

// Delete hard-deletes a category. It does not cascade to transactions or
// transfers referencing it; archiving is the normal removal path.
func (cs *CategoryStore) Delete(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return cs.s.Delete(ctx, StoreCategories, id)
}
