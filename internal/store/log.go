package store

import (
	"context"
	"database/sql"

	"github.com/stockline/inventory-api/internal/domain"
)

// LogStore defines the persistence interface for the append-only inventory
// audit log. Log rows are never updated or removed.
type LogStore interface {
	// Append persists a new audit log entry.
	Append(ctx context.Context, log *domain.InventoryLog) error

	// ListBySKU returns all audit log entries for the given SKU, oldest first.
	ListBySKU(ctx context.Context, sku string) ([]domain.InventoryLog, error)

	// WithTx returns a new LogStore instance backed by the given transaction.
	WithTx(tx *sql.Tx) LogStore
}
