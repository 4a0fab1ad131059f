package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stockline/inventory-api/internal/api"
	apiMiddleware "github.com/stockline/inventory-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It uses the application's services to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	inventoryHandler := api.NewInventoryHandler(app.inventoryService, app.logger)
	healthHandler := api.NewHealthHandler(app.prober, app.logger)

	r.Route("/inventory", func(r chi.Router) {
		// Read endpoints (no identity required)
		r.Get("/", inventoryHandler.ListItems)
		r.Get("/{sku}", inventoryHandler.GetItemBySKU)
		r.Get("/{sku}/logs", inventoryHandler.ListItemLogs)

		// Mutations require an attributable user identity
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.RequireUserID)
			r.Post("/", inventoryHandler.CreateItem)
			r.Patch("/{sku}/quantity", inventoryHandler.AdjustQuantity)
			r.Delete("/{sku}", inventoryHandler.DeleteItem)
		})
	})

	r.Get("/healthz", healthHandler.Check)

	return r
}
