// Package cache is the key-value store behind the icon service.
// Values are either the serialized token catalog or base64-encoded
// image blobs; readers treat any failure as a miss so the pipeline
// degrades to an upstream fetch.
package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the key is absent. Absence is a
// normal outcome, distinct from a connectivity failure.
var ErrMiss = errors.New("cache: miss")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	FlushAll(ctx context.Context) error
}
