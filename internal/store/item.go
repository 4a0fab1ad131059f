package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/stockline/inventory-api/internal/domain"
)

// ItemStore defines the persistence interface for inventory items.
//
// Mutating operations that target an existing item (AdjustAvailable,
// SoftDelete) are conditional writes: the existence check and the mutation
// are a single statement scoped to non-deleted rows, and ErrItemNotFound is
// derived from the statement affecting no row. There is no separate
// check-then-act step.
type ItemStore interface {
	// GetAll returns all non-deleted inventory items.
	GetAll(ctx context.Context) ([]domain.InventoryItem, error)

	// GetBySKU returns the non-deleted item with the given SKU.
	// Returns ErrItemNotFound if no live item matches.
	GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)

	// Create persists a new inventory item.
	// Returns ErrSKUExists if a non-deleted item with the same SKU exists.
	Create(ctx context.Context, item *domain.InventoryItem) error

	// AdjustAvailable atomically increments the available quantity of the
	// live item with the given SKU by delta (which may be negative) and
	// returns the updated item. Returns ErrItemNotFound if no live item
	// matches.
	AdjustAvailable(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error)

	// SoftDelete atomically marks the live item with the given SKU as
	// deleted at the given time and returns the item as it was deleted,
	// including its remaining available quantity. Returns ErrItemNotFound
	// if no live item matches.
	SoftDelete(ctx context.Context, sku string, deletedAt time.Time) (*domain.InventoryItem, error)

	// WithTx returns a new ItemStore instance backed by the given transaction.
	WithTx(tx *sql.Tx) ItemStore
}
