package database

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxRunner runs a function within a database transaction. The transactional
// handle travels in the context so repositories pick it up transparently.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// GormTxRunner is the gorm-backed TxRunner used in production.
type GormTxRunner struct {
	db *gorm.DB
}

func NewGormTxRunner(db *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: db}
}

// RunInTx is re-entrant: if the context already carries a transaction the
// callback joins it instead of opening a nested one.
func (r *GormTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// FromContext returns the transaction bound to ctx, or fallback when the
// caller is not inside a transaction.
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
