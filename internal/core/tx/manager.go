// Package tx provides transaction management abstractions.
// Domain services depend on Manager; the implementation lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back; nested calls reuse the
// transaction already stored in ctx.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Nop runs fn directly. Used by in-memory repositories in tests.
type Nop struct{}

// RunInTransaction implements Manager.
func (Nop) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
