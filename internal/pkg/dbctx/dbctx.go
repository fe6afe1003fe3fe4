package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context carries the caller's context into a repository call. Tx, when set,
// is used instead of the repository's own handle.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// New wraps ctx; a nil ctx becomes context.Background().
func New(ctx context.Context) Context {
	return Context{Ctx: orBackground(ctx)}
}

// Detached keeps ctx's values but not its cancellation, so a write started
// for a request still completes when the client has gone away.
func Detached(ctx context.Context) Context {
	return Context{Ctx: context.WithoutCancel(orBackground(ctx))}
}

// DB returns the handle to run statements on, bound to the context.
func (c Context) DB(db *gorm.DB) *gorm.DB {
	if c.Tx != nil {
		db = c.Tx
	}
	return db.WithContext(orBackground(c.Ctx))
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
