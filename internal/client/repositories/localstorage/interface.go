package localstorage

import (
	"context"

	"github.com/dmitrijs2005/careercoach/internal/dbx"
)

// Repository is the client's key/value local storage.
// Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)

	// WithTx returns a repository bound to tx, for use inside dbx.WithTx.
	WithTx(tx dbx.DBTX) Repository
}
