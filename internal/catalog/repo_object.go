package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bravemath-backend/internal/shared/storage/object"
)

// ObjectRepo reads and writes the catalog JSON through an object store —
// a local directory in dev, the site's S3 bucket in production.
type ObjectRepo struct {
	Store object.ObjectStore
	Key   string
}

// NewObjectRepo constructs an ObjectRepo for the given catalog key.
func NewObjectRepo(store object.ObjectStore, key string) *ObjectRepo {
	return &ObjectRepo{Store: store, Key: key}
}

// Load decodes the catalog file. A missing file yields an empty catalog so a
// fresh deployment serves an empty list rather than erroring.
func (r *ObjectRepo) Load(ctx context.Context) (Catalog, error) {
	body, err := r.Store.Open(ctx, r.Key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Catalog{Documents: []Document{}}, nil
		}
		return Catalog{}, fmt.Errorf("open catalog %s: %w", r.Key, err)
	}
	defer body.Close()

	var cat Catalog
	if err := json.NewDecoder(body).Decode(&cat); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog %s: %w", r.Key, err)
	}
	if cat.Documents == nil {
		cat.Documents = []Document{}
	}
	return cat, nil
}

// Save writes the catalog back, pretty-printed the way the site expects it.
func (r *ObjectRepo) Save(ctx context.Context, cat Catalog) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if _, err := r.Store.Save(ctx, r.Key, "application/json; charset=utf-8", bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save catalog %s: %w", r.Key, err)
	}
	return nil
}
