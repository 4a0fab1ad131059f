// Package main implements the entry point for the inventory API server,
// which tracks inventory items by SKU and records an append-only audit log
// of quantity-affecting transactions.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"

	"github.com/stockline/inventory-api/internal/config"
	"github.com/stockline/inventory-api/internal/platform/logger"
	"github.com/stockline/inventory-api/internal/platform/postgres"
	"github.com/stockline/inventory-api/internal/service"
)

// application holds the initialized dependencies shared across the server.
type application struct {
	config           *config.Config
	logger           *slog.Logger
	db               *sql.DB
	inventoryService service.InventoryService
	prober           *postgres.Prober
}

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		app.logger.Error("Server exited with error", "error", err)
	}
}

// initializeApp loads configuration and sets up application components:
// logging, the database connection, migrations, stores, and the inventory
// service. Returns the initialized application or the first error hit.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		return nil, err
	}

	itemStore := postgres.NewPostgresItemStore(db, appLogger)
	logStore := postgres.NewPostgresLogStore(db, appLogger)

	inventoryService, err := service.NewInventoryService(
		service.NewItemRepository(db, itemStore),
		service.NewLogRepository(logStore),
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           appLogger,
		db:               db,
		inventoryService: inventoryService,
		prober:           postgres.NewProber(db),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
