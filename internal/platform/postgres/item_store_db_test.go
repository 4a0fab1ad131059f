package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stockline/inventory-api/internal/domain"
	"github.com/stockline/inventory-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test timeout to prevent long-running tests
const testTimeout = 5 * time.Second

// checkIntegrationTestEnvironment checks if we're running in an environment
// where integration tests can be executed, by checking DATABASE_URL
func checkIntegrationTestEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// migrateTestDB applies the embedded migrations to the test database exactly
// once per test binary. goose keeps global state, so concurrent Up calls from
// parallel tests are not safe.
var migrateTestDB = sync.OnceValues(func() (bool, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return false, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return false, fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return false, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, MigrationsDir); err != nil {
		return false, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return true, nil
})

// getTestDB gets a migrated connection to the test database
func getTestDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	if _, err := migrateTestDB(); err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Set connection pool parameters
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify the connection works
	if err := db.Ping(); err != nil {
		_ = db.Close() // Explicitly ignore error from Close
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// withTestTx executes a function within a transaction and rolls it back
// afterward. This ensures that tests are isolated and don't affect each other.
func withTestTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	require.NoError(t, err, "Failed to begin transaction")

	// Ensure the transaction is rolled back when the test completes
	defer func() {
		err := tx.Rollback()
		// Ignore error if transaction was already committed
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Error rolling back transaction: %v", err)
		}
	}()

	fn(tx)
}

// mustCreateItem inserts a live item with the given SKU and quantity.
func mustCreateItem(
	t *testing.T,
	ctx context.Context,
	itemStore *PostgresItemStore,
	sku string,
	quantity int,
) *domain.InventoryItem {
	t.Helper()

	item, err := domain.NewInventoryItem(sku, quantity)
	require.NoError(t, err, "Failed to build test item")
	require.NoError(t, itemStore.Create(ctx, item), "Failed to create test item in DB")
	return item
}

// TestItemStoreIntegration runs a complete set of integration tests for the
// ItemStore implementation against a real database.
func TestItemStoreIntegration(t *testing.T) {
	// Skip the integration test wrapper if not in integration test environment
	if !checkIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	t.Run("TestPostgresItemStore_CreateAfterSoftDelete", TestPostgresItemStore_CreateAfterSoftDelete)
	t.Run("TestPostgresItemStore_CreateDuplicateLiveSKU", TestPostgresItemStore_CreateDuplicateLiveSKU)
	t.Run("TestPostgresItemStore_GetAllExcludesDeleted", TestPostgresItemStore_GetAllExcludesDeleted)
	t.Run("TestPostgresItemStore_AdjustAvailable", TestPostgresItemStore_AdjustAvailable)
	t.Run("TestPostgresItemStore_SoftDelete", TestPostgresItemStore_SoftDelete)
}

// TestPostgresItemStore_CreateAfterSoftDelete verifies that a soft-deleted row
// does not block re-creation of the same SKU: the unique index only covers
// live rows.
func TestPostgresItemStore_CreateAfterSoftDelete(t *testing.T) {
	if !checkIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	t.Parallel()

	db, err := getTestDB()
	require.NoError(t, err, "Failed to connect to test database")
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	withTestTx(t, db, func(tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		itemStore := NewPostgresItemStore(tx, nil)

		first := mustCreateItem(t, ctx, itemStore, "RECREATE1", 5)

		_, err := itemStore.SoftDelete(ctx, "RECREATE1", time.Now().UTC())
		require.NoError(t, err, "SoftDelete should succeed on a live item")

		// Re-creating the same SKU must succeed now that no live row holds it
		second := mustCreateItem(t, ctx, itemStore, "RECREATE1", 9)
		assert.NotEqual(t, first.ID, second.ID, "Re-created item should be a new row")

		got, err := itemStore.GetBySKU(ctx, "RECREATE1")
		require.NoError(t, err, "GetBySKU should find the re-created item")
		assert.Equal(t, second.ID, got.ID, "Lookup should return the new live row")
		assert.Equal(t, 9, got.Available, "Lookup should return the new quantity")
		assert.Nil(t, got.DeletedAt, "Live row should have no deletion timestamp")
	})
}

// TestPostgresItemStore_CreateDuplicateLiveSKU verifies that a second create
// for a live SKU fails with ErrSKUExists via the unique index, with no
// existence pre-check involved.
func TestPostgresItemStore_CreateDuplicateLiveSKU(t *testing.T) {
	if !checkIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	t.Parallel()

	db, err := getTestDB()
	require.NoError(t, err, "Failed to connect to test database")
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	// The unique violation aborts the enclosing transaction, so this check
	// runs last in its own transaction.
	withTestTx(t, db, func(tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		itemStore := NewPostgresItemStore(tx, nil)

		mustCreateItem(t, ctx, itemStore, "DUPLICATE1", 3)

		dup, err := domain.NewInventoryItem("DUPLICATE1", 7)
		require.NoError(t, err, "Failed to build duplicate test item")

		err = itemStore.Create(ctx, dup)
		assert.Error(t, err, "Create should fail for a live duplicate SKU")
		assert.ErrorIs(t, err, store.ErrSKUExists, "Error should be ErrSKUExists")
	})
}

// TestPostgresItemStore_GetAllExcludesDeleted verifies that listings only
// contain live items.
func TestPostgresItemStore_GetAllExcludesDeleted(t *testing.T) {
	if !checkIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	t.Parallel()

	db, err := getTestDB()
	require.NoError(t, err, "Failed to connect to test database")
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	withTestTx(t, db, func(tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		itemStore := NewPostgresItemStore(tx, nil)

		mustCreateItem(t, ctx, itemStore, "LISTKEEP1", 4)
		mustCreateItem(t, ctx, itemStore, "LISTDROP1", 2)

		_, err := itemStore.SoftDelete(ctx, "LISTDROP1", time.Now().UTC())
		require.NoError(t, err, "SoftDelete should succeed on a live item")

		items, err := itemStore.GetAll(ctx)
		require.NoError(t, err, "GetAll should succeed")

		skus := make([]string, 0, len(items))
		for _, item := range items {
			skus = append(skus, item.SKU)
		}
		assert.Contains(t, skus, "LISTKEEP1", "Live item should be listed")
		assert.NotContains(t, skus, "LISTDROP1", "Soft-deleted item should be excluded")
	})
}

// TestPostgresItemStore_AdjustAvailable tests the conditional-update quantity
// adjustment against live, missing, and soft-deleted SKUs.
func TestPostgresItemStore_AdjustAvailable(t *testing.T) {
	if !checkIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	t.Parallel()

	db, err := getTestDB()
	require.NoError(t, err, "Failed to connect to test database")
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	withTestTx(t, db, func(tx *sql.Tx) {
		itemStore := NewPostgresItemStore(tx, nil)

		t.Run("applies_positive_and_negative_deltas", func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			mustCreateItem(t, ctx, itemStore, "ADJUST1", 10)

			updated, err := itemStore.AdjustAvailable(ctx, "ADJUST1", 5)
			require.NoError(t, err, "AdjustAvailable should succeed on a live item")
			assert.Equal(t, 15, updated.Available, "Positive delta should be applied")

			// Underflow below zero is allowed
			updated, err = itemStore.AdjustAvailable(ctx, "ADJUST1", -20)
			require.NoError(t, err, "AdjustAvailable should allow negative results")
			assert.Equal(t, -5, updated.Available, "Negative delta should be applied")
		})

		t.Run("missing_sku_returns_not_found", func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			_, err := itemStore.AdjustAvailable(ctx, "ADJUSTMISSING1", 1)
			assert.Error(t, err, "AdjustAvailable should fail for an unknown SKU")
			assert.ErrorIs(t, err, store.ErrItemNotFound, "Error should be ErrItemNotFound")
		})

		t.Run("soft_deleted_sku_returns_not_found", func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			mustCreateItem(t, ctx, itemStore, "ADJUSTGONE1", 3)
			_, err := itemStore.SoftDelete(ctx, "ADJUSTGONE1", time.Now().UTC())
			require.NoError(t, err, "SoftDelete should succeed on a live item")

			_, err = itemStore.AdjustAvailable(ctx, "ADJUSTGONE1", 1)
			assert.Error(t, err, "AdjustAvailable should fail for a soft-deleted SKU")
			assert.ErrorIs(t, err, store.ErrItemNotFound, "Error should be ErrItemNotFound")
		})
	})
}

// TestPostgresItemStore_SoftDelete tests soft deletion: the returned row
// carries the remaining stock, repeat deletes report not-found, and deleted
// items disappear from lookups.
func TestPostgresItemStore_SoftDelete(t *testing.T) {
	if !checkIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	t.Parallel()

	db, err := getTestDB()
	require.NoError(t, err, "Failed to connect to test database")
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	withTestTx(t, db, func(tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		itemStore := NewPostgresItemStore(tx, nil)

		mustCreateItem(t, ctx, itemStore, "DELETE1", 8)

		deletedAt := time.Now().UTC()
		deleted, err := itemStore.SoftDelete(ctx, "DELETE1", deletedAt)
		require.NoError(t, err, "SoftDelete should succeed on a live item")
		assert.Equal(t, 8, deleted.Available, "Deleted row should carry the remaining stock")
		require.NotNil(t, deleted.DeletedAt, "Deleted row should carry the deletion timestamp")
		assert.WithinDuration(t, deletedAt, *deleted.DeletedAt, time.Second,
			"Deletion timestamp should match the requested one")

		// Repeating the delete matches no live row
		_, err = itemStore.SoftDelete(ctx, "DELETE1", time.Now().UTC())
		assert.Error(t, err, "Repeated SoftDelete should fail")
		assert.ErrorIs(t, err, store.ErrItemNotFound, "Error should be ErrItemNotFound")

		_, err = itemStore.GetBySKU(ctx, "DELETE1")
		assert.Error(t, err, "GetBySKU should not find a soft-deleted item")
		assert.ErrorIs(t, err, store.ErrItemNotFound, "Error should be ErrItemNotFound")
	})
}
