package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/stockline/inventory-api/internal/domain"
	"github.com/stockline/inventory-api/internal/service"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
//
// A duplicate SKU on create intentionally maps to 404, matching the existing
// API contract.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrSKUExists):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrInvalidSKU),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptyLogUserID):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message for
// the given error and SKU. Internal details are never included; they are
// logged server-side instead.
func GetSafeErrorMessage(err error, sku string) string {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		return fmt.Sprintf("Item with SKU %s does not exist", sku)

	case errors.Is(err, service.ErrSKUExists):
		return fmt.Sprintf("Item with SKU %s already exists", sku)

	case errors.Is(err, domain.ErrInvalidSKU):
		return "SKU must be a non-empty uppercase alphanumeric string"

	case errors.Is(err, domain.ErrInvalidQuantity):
		return "Quantity must be an integer greater than or equal to 1"

	case errors.Is(err, domain.ErrEmptyLogUserID):
		return "Missing required header: x-user-id"

	default:
		return "Internal server error"
	}
}
