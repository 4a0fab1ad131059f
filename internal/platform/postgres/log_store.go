package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/stockline/inventory-api/internal/domain"
	"github.com/stockline/inventory-api/internal/platform/logger"
	"github.com/stockline/inventory-api/internal/store"
)

// PostgresLogStore implements the store.LogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLogStore creates a new PostgreSQL implementation of the LogStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresLogStore(db store.DBTX, logger *slog.Logger) *PostgresLogStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "log_store")),
	}
}

// Ensure PostgresLogStore implements store.LogStore interface
var _ store.LogStore = (*PostgresLogStore)(nil)

// Append implements store.LogStore.Append
// It inserts a new audit log row, handling domain validation. Rows reference
// items by SKU only (no foreign key), so log entries survive item
// soft-deletion.
func (s *PostgresLogStore) Append(ctx context.Context, entry *domain.InventoryLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("log entry validation failed during append",
			slog.String("error", err.Error()),
			slog.String("sku", entry.SKU))
		return err
	}

	query := `
		INSERT INTO inventory_logs (id, sku, user_id, type, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.SKU,
		entry.UserID,
		entry.Type,
		entry.Quantity,
		entry.CreatedAt,
	)

	if err != nil {
		log.Error("failed to append inventory log",
			slog.String("error", err.Error()),
			slog.String("sku", entry.SKU),
			slog.String("type", string(entry.Type)))
		return store.NewStoreError("inventory_log", "append", "insert failed", err)
	}

	log.Info("inventory log appended",
		slog.String("log_id", entry.ID.String()),
		slog.String("sku", entry.SKU),
		slog.String("type", string(entry.Type)),
		slog.Int("quantity", entry.Quantity))
	return nil
}

// ListBySKU implements store.LogStore.ListBySKU
// It returns the audit trail for a SKU, oldest entry first.
func (s *PostgresLogStore) ListBySKU(
	ctx context.Context,
	sku string,
) ([]domain.InventoryLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, sku, user_id, type, quantity, created_at
		FROM inventory_logs
		WHERE sku = $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, sku)
	if err != nil {
		log.Error("failed to list inventory logs",
			slog.String("error", err.Error()),
			slog.String("sku", sku))
		return nil, store.NewStoreError("inventory_log", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]domain.InventoryLog, 0)
	for rows.Next() {
		var entry domain.InventoryLog
		if err := rows.Scan(
			&entry.ID,
			&entry.SKU,
			&entry.UserID,
			&entry.Type,
			&entry.Quantity,
			&entry.CreatedAt,
		); err != nil {
			log.Error("failed to scan inventory log row",
				slog.String("error", err.Error()),
				slog.String("sku", sku))
			return nil, store.NewStoreError("inventory_log", "list", "scan failed", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("inventory_log", "list", "row iteration failed", err)
	}

	return entries, nil
}

// WithTx implements store.LogStore.WithTx
// It returns a new store instance bound to the given transaction.
func (s *PostgresLogStore) WithTx(tx *sql.Tx) store.LogStore {
	return &PostgresLogStore{
		db:     tx,
		logger: s.logger,
	}
}
