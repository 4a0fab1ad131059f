package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/stockline/inventory-api/internal/domain"
	"github.com/stockline/inventory-api/internal/store"
)

// ItemRepository defines the repository interface for the service layer.
// This is aligned with store.ItemStore, plus the hooks needed to run the
// item mutation and its audit log append in one transaction.
type ItemRepository interface {
	// GetAll returns all non-deleted inventory items.
	GetAll(ctx context.Context) ([]domain.InventoryItem, error)

	// GetBySKU returns the non-deleted item with the given SKU.
	GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)

	// Create persists a new inventory item.
	Create(ctx context.Context, item *domain.InventoryItem) error

	// AdjustAvailable atomically applies a quantity delta to a live item.
	AdjustAvailable(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error)

	// SoftDelete atomically marks a live item as deleted.
	SoftDelete(ctx context.Context, sku string, deletedAt time.Time) (*domain.InventoryItem, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ItemRepository

	// DB returns the underlying database connection.
	DB() *sql.DB
}

// LogRepository defines the audit log repository interface for the service layer.
type LogRepository interface {
	// Append persists a new audit log entry.
	Append(ctx context.Context, entry *domain.InventoryLog) error

	// ListBySKU returns the audit trail for a SKU, oldest first.
	ListBySKU(ctx context.Context, sku string) ([]domain.InventoryLog, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) LogRepository
}

// InventoryService provides inventory item operations. Every mutation writes
// the item change and exactly one audit log entry in the same transaction:
// either both persist or neither does.
type InventoryService interface {
	// GetAllItems returns all non-deleted inventory items.
	GetAllItems(ctx context.Context) ([]domain.InventoryItem, error)

	// GetItemBySKU returns the non-deleted item with the given SKU.
	// Returns ErrItemNotFound if no live item matches.
	GetItemBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)

	// AddItem creates a new item with available = quantity and appends a
	// CREATE log entry recording that quantity.
	// Returns ErrSKUExists if a live item with the SKU already exists.
	AddItem(ctx context.Context, userID, sku string, quantity int) (*domain.InventoryItem, error)

	// UpdateItemBySKU adjusts the item's available quantity by delta (which
	// may be negative; underflow below zero is not prevented) and appends an
	// UPDATE log entry recording the raw delta.
	// Returns ErrItemNotFound if no live item matches.
	UpdateItemBySKU(ctx context.Context, userID, sku string, delta int) (*domain.InventoryItem, error)

	// DeleteItemBySKU soft-deletes the item and appends a DELETE log entry
	// whose quantity is the remaining available stock at deletion time.
	// Returns ErrItemNotFound if no live item matches, including repeated
	// deletes of the same SKU.
	DeleteItemBySKU(ctx context.Context, userID, sku string) error

	// GetItemLogs returns the audit trail for the given SKU, oldest first.
	// The trail of a soft-deleted item remains readable.
	GetItemLogs(ctx context.Context, sku string) ([]domain.InventoryLog, error)
}

// txRunner runs fn inside a database transaction. It exists as an injection
// point so unit tests can execute transactional flows without a database.
type txRunner func(ctx context.Context, db *sql.DB, fn store.TxFn) error

// inventoryService implements the InventoryService interface.
type inventoryService struct {
	itemRepo ItemRepository
	logRepo  LogRepository
	logger   *slog.Logger
	runTx    txRunner
}

// NewInventoryService creates a new InventoryService.
// It returns an error if any of the required dependencies are nil.
func NewInventoryService(
	itemRepo ItemRepository,
	logRepo LogRepository,
	logger *slog.Logger,
) (InventoryService, error) {
	if itemRepo == nil {
		return nil, &InventoryServiceError{
			Operation: "create_service",
			Message:   "itemRepo cannot be nil",
		}
	}
	if logRepo == nil {
		return nil, &InventoryServiceError{
			Operation: "create_service",
			Message:   "logRepo cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &inventoryService{
		itemRepo: itemRepo,
		logRepo:  logRepo,
		logger:   logger.With("component", "inventory_service"),
		runTx:    store.RunInTransaction,
	}, nil
}

// GetAllItems returns all non-deleted items.
func (s *inventoryService) GetAllItems(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.itemRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list items", "error", err)
		return nil, NewInventoryServiceError("get_all_items", "failed to list items", err)
	}
	return items, nil
}

// GetItemBySKU returns the live item for the SKU.
// The lookup is a single query scoped to non-deleted rows, so a soft-deleted
// item can never be returned after passing an existence check.
func (s *inventoryService) GetItemBySKU(
	ctx context.Context,
	sku string,
) (*domain.InventoryItem, error) {
	item, err := s.itemRepo.GetBySKU(ctx, sku)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to get item", "error", err, "sku", sku)
		}
		return nil, NewInventoryServiceError("get_item", "failed to get item", err)
	}
	return item, nil
}

// AddItem creates the item and its CREATE audit entry atomically. Uniqueness
// of the live SKU is enforced by the store at insert time, not by a prior
// read, so two concurrent creates cannot both succeed.
func (s *inventoryService) AddItem(
	ctx context.Context,
	userID, sku string,
	quantity int,
) (*domain.InventoryItem, error) {
	item, err := domain.NewInventoryItem(sku, quantity)
	if err != nil {
		s.logger.Warn("invalid item on add", "error", err, "sku", sku)
		return nil, NewInventoryServiceError("add_item", "invalid item", err)
	}

	entry, err := domain.NewInventoryLog(sku, userID, domain.TransactionTypeCreate, quantity)
	if err != nil {
		s.logger.Warn("invalid log entry on add", "error", err, "sku", sku)
		return nil, NewInventoryServiceError("add_item", "invalid log entry", err)
	}

	err = s.runTx(ctx, s.itemRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		if err := s.itemRepo.WithTx(tx).Create(ctx, item); err != nil {
			return err
		}
		return s.logRepo.WithTx(tx).Append(ctx, entry)
	})
	if err != nil {
		if !store.IsDuplicateError(err) {
			s.logger.Error("failed to add item", "error", err, "sku", sku, "user_id", userID)
		}
		return nil, NewInventoryServiceError("add_item", "failed to persist item", err)
	}

	s.logger.Info("item added",
		"sku", sku,
		"available", item.Available,
		"user_id", userID)
	return item, nil
}

// UpdateItemBySKU applies the delta and its UPDATE audit entry atomically.
// The adjustment is one conditional UPDATE on live rows; a missing or
// soft-deleted item surfaces as ErrItemNotFound from the same statement.
func (s *inventoryService) UpdateItemBySKU(
	ctx context.Context,
	userID, sku string,
	delta int,
) (*domain.InventoryItem, error) {
	entry, err := domain.NewInventoryLog(sku, userID, domain.TransactionTypeUpdate, delta)
	if err != nil {
		s.logger.Warn("invalid log entry on update", "error", err, "sku", sku)
		return nil, NewInventoryServiceError("update_item", "invalid log entry", err)
	}

	var updated *domain.InventoryItem
	err = s.runTx(ctx, s.itemRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		item, err := s.itemRepo.WithTx(tx).AdjustAvailable(ctx, sku, delta)
		if err != nil {
			return err
		}
		updated = item
		return s.logRepo.WithTx(tx).Append(ctx, entry)
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to update item", "error", err, "sku", sku, "user_id", userID)
		}
		return nil, NewInventoryServiceError("update_item", "failed to adjust quantity", err)
	}

	s.logger.Info("item updated",
		"sku", sku,
		"delta", delta,
		"available", updated.Available,
		"user_id", userID)
	return updated, nil
}

// DeleteItemBySKU soft-deletes the item and its DELETE audit entry
// atomically. The DELETE log records the full remaining stock at deletion
// time, not zero, so that quantity comes from the row the conditional UPDATE
// returned inside the transaction.
func (s *inventoryService) DeleteItemBySKU(ctx context.Context, userID, sku string) error {
	deletedAt := time.Now().UTC()

	err := s.runTx(ctx, s.itemRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		item, err := s.itemRepo.WithTx(tx).SoftDelete(ctx, sku, deletedAt)
		if err != nil {
			return err
		}

		entry, err := domain.NewInventoryLog(
			sku,
			userID,
			domain.TransactionTypeDelete,
			item.Available,
		)
		if err != nil {
			return err
		}
		return s.logRepo.WithTx(tx).Append(ctx, entry)
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to delete item", "error", err, "sku", sku, "user_id", userID)
		}
		return NewInventoryServiceError("delete_item", "failed to soft-delete item", err)
	}

	s.logger.Info("item deleted", "sku", sku, "user_id", userID)
	return nil
}

// GetItemLogs returns the audit trail for the SKU.
func (s *inventoryService) GetItemLogs(
	ctx context.Context,
	sku string,
) ([]domain.InventoryLog, error) {
	entries, err := s.logRepo.ListBySKU(ctx, sku)
	if err != nil {
		s.logger.Error("failed to list item logs", "error", err, "sku", sku)
		return nil, NewInventoryServiceError("get_item_logs", "failed to list logs", err)
	}
	return entries, nil
}
