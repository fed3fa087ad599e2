package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open when no object exists at the key.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for reading and writing keyed binary
// objects. The catalog file and site assets live behind this interface so
// the same code serves a local directory in dev and the site's S3 bucket in
// production.
type ObjectStore interface {
	Save(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
