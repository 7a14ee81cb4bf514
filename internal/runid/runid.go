package runid

import (
	"context"
	"math/rand/v2"
)

// key is the context key for the analysis run ID.
type key struct{}

// NewContext returns a copy of parent carrying a new random run ID.
// It also returns the generated ID.
func NewContext(parent context.Context) (context.Context, int64) {
	id := rand.Int64()
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the run ID from ctx.
// It returns the ID and whether it was present.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(key{}).(int64)
	return id, ok
}
