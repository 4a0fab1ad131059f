package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stockline/inventory-api/internal/domain"
	"github.com/stockline/inventory-api/internal/platform/logger"
	"github.com/stockline/inventory-api/internal/store"
)

// PostgresItemStore implements the store.ItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the ItemStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

// itemColumns is the SELECT/RETURNING column list shared by all item queries.
const itemColumns = "id, sku, available, created_at, updated_at, deleted_at"

// GetAll implements store.ItemStore.GetAll
// It returns all non-deleted items, ordered by SKU for stable listings.
func (s *PostgresItemStore) GetAll(ctx context.Context) ([]domain.InventoryItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM inventory_items
		WHERE deleted_at IS NULL
		ORDER BY sku
	`, itemColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list inventory items",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("inventory_item", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]domain.InventoryItem, 0)
	for rows.Next() {
		var item domain.InventoryItem
		if err := scanItem(rows.Scan, &item); err != nil {
			log.Error("failed to scan inventory item row",
				slog.String("error", err.Error()))
			return nil, store.NewStoreError("inventory_item", "list", "scan failed", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("inventory_item", "list", "row iteration failed", err)
	}

	return items, nil
}

// GetBySKU implements store.ItemStore.GetBySKU
// It retrieves the non-deleted item with the given SKU. The deleted filter is
// part of the query itself, so a soft-deleted item can never be returned.
// Returns store.ErrItemNotFound if no live item matches.
func (s *PostgresItemStore) GetBySKU(
	ctx context.Context,
	sku string,
) (*domain.InventoryItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM inventory_items
		WHERE sku = $1 AND deleted_at IS NULL
	`, itemColumns)

	var item domain.InventoryItem
	err := scanItem(s.db.QueryRowContext(ctx, query, sku).Scan, &item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("inventory item not found", slog.String("sku", sku))
			return nil, store.ErrItemNotFound
		}
		log.Error("failed to get inventory item",
			slog.String("error", err.Error()),
			slog.String("sku", sku))
		return nil, store.NewStoreError("inventory_item", "get", "query failed", err)
	}

	return &item, nil
}

// Create implements store.ItemStore.Create
// It saves a new inventory item to the database, handling domain validation.
// Returns store.ErrSKUExists if a non-deleted item with the same SKU already
// exists; uniqueness is enforced by a partial unique index on live rows, so
// existence and insert are a single atomic step.
func (s *PostgresItemStore) Create(ctx context.Context, item *domain.InventoryItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("item validation failed during create",
			slog.String("error", err.Error()),
			slog.String("sku", item.SKU))
		return err
	}

	query := `
		INSERT INTO inventory_items (id, sku, available, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.SKU,
		item.Available,
		item.CreatedAt,
		item.UpdatedAt,
		item.DeletedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate live SKU on create",
				slog.String("sku", item.SKU))
			return store.ErrSKUExists
		}

		log.Error("failed to create inventory item",
			slog.String("error", err.Error()),
			slog.String("sku", item.SKU))
		return store.NewStoreError("inventory_item", "create", "insert failed", err)
	}

	log.Info("inventory item created",
		slog.String("item_id", item.ID.String()),
		slog.String("sku", item.SKU),
		slog.Int("available", item.Available))
	return nil
}

// AdjustAvailable implements store.ItemStore.AdjustAvailable
// It increments available by delta for the live item with the given SKU and
// returns the updated row. The WHERE clause restricts the update to
// non-deleted rows, so "does not exist" is detected by the statement matching
// nothing rather than by a separate existence check.
// Returns store.ErrItemNotFound if no live item matches.
func (s *PostgresItemStore) AdjustAvailable(
	ctx context.Context,
	sku string,
	delta int,
) (*domain.InventoryItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		UPDATE inventory_items
		SET available = available + $1, updated_at = $2
		WHERE sku = $3 AND deleted_at IS NULL
		RETURNING %s
	`, itemColumns)

	var item domain.InventoryItem
	err := scanItem(
		s.db.QueryRowContext(ctx, query, delta, time.Now().UTC(), sku).Scan,
		&item,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("inventory item not found for adjust", slog.String("sku", sku))
			return nil, store.ErrItemNotFound
		}
		log.Error("failed to adjust inventory item",
			slog.String("error", err.Error()),
			slog.String("sku", sku),
			slog.Int("delta", delta))
		return nil, store.NewStoreError("inventory_item", "adjust", "update failed", err)
	}

	log.Info("inventory item adjusted",
		slog.String("sku", sku),
		slog.Int("delta", delta),
		slog.Int("available", item.Available))
	return &item, nil
}

// SoftDelete implements store.ItemStore.SoftDelete
// It stamps deleted_at on the live item with the given SKU and returns the
// row as deleted. The returned Available is the remaining stock at deletion
// time; the delete itself never changes it.
// Returns store.ErrItemNotFound if no live item matches, including when the
// item was already soft-deleted.
func (s *PostgresItemStore) SoftDelete(
	ctx context.Context,
	sku string,
	deletedAt time.Time,
) (*domain.InventoryItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		UPDATE inventory_items
		SET deleted_at = $1, updated_at = $1
		WHERE sku = $2 AND deleted_at IS NULL
		RETURNING %s
	`, itemColumns)

	var item domain.InventoryItem
	err := scanItem(s.db.QueryRowContext(ctx, query, deletedAt, sku).Scan, &item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("inventory item not found for delete", slog.String("sku", sku))
			return nil, store.ErrItemNotFound
		}
		log.Error("failed to soft-delete inventory item",
			slog.String("error", err.Error()),
			slog.String("sku", sku))
		return nil, store.NewStoreError("inventory_item", "delete", "update failed", err)
	}

	log.Info("inventory item soft-deleted",
		slog.String("sku", sku),
		slog.Int("available_at_deletion", item.Available))
	return &item, nil
}

// WithTx implements store.ItemStore.WithTx
// It returns a new store instance bound to the given transaction.
func (s *PostgresItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &PostgresItemStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanItem scans one item row using the shared column order.
func scanItem(scan func(dest ...any) error, item *domain.InventoryItem) error {
	var deletedAt sql.NullTime
	if err := scan(
		&item.ID,
		&item.SKU,
		&item.Available,
		&item.CreatedAt,
		&item.UpdatedAt,
		&deletedAt,
	); err != nil {
		return err
	}
	if deletedAt.Valid {
		item.DeletedAt = &deletedAt.Time
	}
	return nil
}
