package sqldb

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager runs functions inside a database transaction.
// Repositories pick the transaction up from ctx, so every call made with
// the ctx passed to fn joins it. Nested calls use savepoints.
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    n, err := repo.Count(ctx)
//	    if err != nil || n > 0 {
//	        return err
//	    }
//	    return repo.Create(ctx, b) // rolled back if this fails
//	})
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager.
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction commits when fn returns nil and rolls back otherwise.
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return dbFrom(ctx, m.db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom returns the transaction carried by ctx, or fallback, bound to ctx.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}
