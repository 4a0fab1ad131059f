package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stockline/inventory-api/internal/api/shared"
	"github.com/stockline/inventory-api/internal/domain"
	"github.com/stockline/inventory-api/internal/service"
)

// skuValidationTag is the validator expression for SKU values: non-empty,
// uppercase letters and digits only.
const skuValidationTag = "required,uppercase,alphanum"

// CreateItemRequest represents the request body for creating a new inventory item.
// Quantity is the absolute initial stock count.
type CreateItemRequest struct {
	SKU      string `json:"sku" validate:"required,uppercase,alphanum"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// AdjustQuantityRequest represents the request body for adjusting an item's
// quantity. Quantity is a signed delta, not an absolute count; a pointer
// distinguishes an explicit zero from a missing field.
type AdjustQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// ItemResponse represents the response data for an inventory item.
type ItemResponse struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Available int       `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LogResponse represents the response data for an audit log entry.
type LogResponse struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// InventoryHandler handles inventory-related HTTP requests
type InventoryHandler struct {
	inventoryService service.InventoryService
	logger           *slog.Logger
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService service.InventoryService, logger *slog.Logger) *InventoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryHandler{
		inventoryService: inventoryService,
		logger:           logger.With("component", "inventory_handler"),
	}
}

// ListItems handles GET /inventory requests
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventoryService.GetAllItems(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Internal server error", err)
		return
	}

	data := make([]ItemResponse, 0, len(items))
	for i := range items {
		data = append(data, itemToResponse(&items[i]))
	}

	shared.Respond(w, r, http.StatusOK, "List of inventory items", data)
}

// GetItemBySKU handles GET /inventory/{sku} requests
func (h *InventoryHandler) GetItemBySKU(w http.ResponseWriter, r *http.Request) {
	sku, ok := h.skuParam(w, r)
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItemBySKU(r.Context(), sku)
	if err != nil {
		h.respondServiceError(w, r, sku, err)
		return
	}

	shared.Respond(w, r, http.StatusOK,
		fmt.Sprintf("Item with SKU %s", sku), itemToResponse(item))
}

// CreateItem handles POST /inventory requests
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Validation error: sku must be non-empty uppercase alphanumeric and quantity must be at least 1")
		return
	}

	userID := shared.GetUserID(r.Context())

	item, err := h.inventoryService.AddItem(r.Context(), userID, req.SKU, req.Quantity)
	if err != nil {
		h.respondServiceError(w, r, req.SKU, err)
		return
	}

	shared.Respond(w, r, http.StatusCreated, "Item created successfully", itemToResponse(item))
}

// AdjustQuantity handles PATCH /inventory/{sku}/quantity requests
func (h *InventoryHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	sku, ok := h.skuParam(w, r)
	if !ok {
		return
	}

	var req AdjustQuantityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Validation error: quantity is required and must be an integer")
		return
	}

	userID := shared.GetUserID(r.Context())

	item, err := h.inventoryService.UpdateItemBySKU(r.Context(), userID, sku, *req.Quantity)
	if err != nil {
		h.respondServiceError(w, r, sku, err)
		return
	}

	shared.Respond(w, r, http.StatusOK,
		fmt.Sprintf("Item with SKU %s updated successfully", sku), itemToResponse(item))
}

// DeleteItem handles DELETE /inventory/{sku} requests
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	sku, ok := h.skuParam(w, r)
	if !ok {
		return
	}

	userID := shared.GetUserID(r.Context())

	if err := h.inventoryService.DeleteItemBySKU(r.Context(), userID, sku); err != nil {
		h.respondServiceError(w, r, sku, err)
		return
	}

	// 204: the response body is ignored per HTTP semantics.
	w.WriteHeader(http.StatusNoContent)
}

// ListItemLogs handles GET /inventory/{sku}/logs requests
func (h *InventoryHandler) ListItemLogs(w http.ResponseWriter, r *http.Request) {
	sku, ok := h.skuParam(w, r)
	if !ok {
		return
	}

	entries, err := h.inventoryService.GetItemLogs(r.Context(), sku)
	if err != nil {
		h.respondServiceError(w, r, sku, err)
		return
	}

	data := make([]LogResponse, 0, len(entries))
	for i := range entries {
		data = append(data, logToResponse(&entries[i]))
	}

	shared.Respond(w, r, http.StatusOK,
		fmt.Sprintf("Transaction log for SKU %s", sku), data)
}

// skuParam extracts and validates the {sku} path parameter. On validation
// failure it writes the 400 response and returns ok=false; the service layer
// is never reached with a malformed SKU.
func (h *InventoryHandler) skuParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	sku := chi.URLParam(r, "sku")
	if err := shared.ValidateVar(sku, skuValidationTag); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Validation error: sku must be non-empty uppercase alphanumeric")
		return "", false
	}
	return sku, true
}

// respondServiceError maps a service error to its HTTP response. Expected
// domain failures become 4xx with a SKU-specific message; everything else is
// logged in full and reported as a generic 500.
func (h *InventoryHandler) respondServiceError(
	w http.ResponseWriter,
	r *http.Request,
	sku string,
	err error,
) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err, sku)

	if status >= http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}
	shared.RespondWithError(w, r, status, message)
}

// itemToResponse converts a domain.InventoryItem to an ItemResponse
func itemToResponse(item *domain.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:        item.ID.String(),
		SKU:       item.SKU,
		Available: item.Available,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// logToResponse converts a domain.InventoryLog to a LogResponse
func logToResponse(entry *domain.InventoryLog) LogResponse {
	return LogResponse{
		ID:        entry.ID.String(),
		SKU:       entry.SKU,
		UserID:    entry.UserID,
		Type:      string(entry.Type),
		Quantity:  entry.Quantity,
		CreatedAt: entry.CreatedAt,
	}
}
