package store

import (
	"context"
)

// Invalidator asks a CDN to drop cached copies of paths and returns the id
// of the created invalidation.
type Invalidator interface {
	Invalidate(context.Context, []string) (string, error)
}

// Lister reports whether any object exists under a key prefix.
type Lister interface {
	Exists(context.Context, string) (bool, error)
}
