package port

import (
	"context"
)

// Transactor runs fn in a single unit of work. Every store call made with
// the context given to fn joins that unit of work. A call made while a unit
// of work is already open joins it instead of opening a new one.
type Transactor interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransactorFunc func(ctx context.Context, fn func(ctx context.Context) error) error

// Transact implements Transactor.
func (f TransactorFunc) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

var _ Transactor = TransactorFunc(nil)
