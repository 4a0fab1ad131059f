package service

import (
	"database/sql"

	"github.com/stockline/inventory-api/internal/store"
)

// itemRepositoryAdapter adapts a store.ItemStore to the service-layer
// ItemRepository interface by carrying the connection pool needed to open
// transactions.
type itemRepositoryAdapter struct {
	store.ItemStore
	db *sql.DB
}

// NewItemRepository wraps a store.ItemStore and its connection pool as an
// ItemRepository for the service layer.
func NewItemRepository(db *sql.DB, s store.ItemStore) ItemRepository {
	return &itemRepositoryAdapter{ItemStore: s, db: db}
}

// WithTx returns a repository bound to the given transaction.
func (a *itemRepositoryAdapter) WithTx(tx *sql.Tx) ItemRepository {
	return &itemRepositoryAdapter{ItemStore: a.ItemStore.WithTx(tx), db: a.db}
}

// DB returns the underlying connection pool.
func (a *itemRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// logRepositoryAdapter adapts a store.LogStore to the service-layer
// LogRepository interface.
type logRepositoryAdapter struct {
	store.LogStore
}

// NewLogRepository wraps a store.LogStore as a LogRepository for the service layer.
func NewLogRepository(s store.LogStore) LogRepository {
	return &logRepositoryAdapter{LogStore: s}
}

// WithTx returns a repository bound to the given transaction.
func (a *logRepositoryAdapter) WithTx(tx *sql.Tx) LogRepository {
	return &logRepositoryAdapter{LogStore: a.LogStore.WithTx(tx)}
}
