package repository

import (
	"context"

	"gorm.io/gorm"
)

// Atomic runs a function inside a single store transaction. Every write
// issued through repositories bound to the handle commits or rolls back as
// one unit; the handle is scoped to the callback and released on every exit
// path. Returning an error from fn aborts the transaction.
type Atomic interface {
	Transact(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormAtomic struct {
	db *gorm.DB
}

// NewAtomic returns an Atomic backed by the given gorm connection.
func NewAtomic(db *gorm.DB) Atomic {
	return &gormAtomic{db: db}
}

func (a *gormAtomic) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return a.db.WithContext(ctx).Transaction(fn)
}
