package catalog

import "context"

// Repo defines access to the catalog document. The catalog is read whole and
// written whole: it is a single static JSON file, not a database.
type Repo interface {
	Load(ctx context.Context) (Catalog, error)
	Save(ctx context.Context, cat Catalog) error
}
