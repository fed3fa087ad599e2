package catalog

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo for tests and dev runs
// without a seeded catalog file.
type MemoryRepo struct {
	mu  sync.RWMutex
	cat Catalog
}

// NewMemoryRepo constructs a MemoryRepo holding the given catalog.
func NewMemoryRepo(cat Catalog) *MemoryRepo {
	if cat.Documents == nil {
		cat.Documents = []Document{}
	}
	return &MemoryRepo{cat: cat}
}

// Load returns a copy of the held catalog.
func (r *MemoryRepo) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return Catalog{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.cat
	out.Documents = make([]Document, len(r.cat.Documents))
	copy(out.Documents, r.cat.Documents)
	return out, nil
}

// Save replaces the held catalog.
func (r *MemoryRepo) Save(ctx context.Context, cat Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := make([]Document, len(cat.Documents))
	copy(docs, cat.Documents)
	cat.Documents = docs
	r.cat = cat
	return nil
}
