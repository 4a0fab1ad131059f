package service

import (
	"errors"
	"fmt"

	"github.com/stockline/inventory-api/internal/store"
)

// Common sentinel errors for InventoryService
var (
	// ErrItemNotFound indicates that no non-deleted item exists for the SKU.
	ErrItemNotFound = errors.New("item with SKU does not exist")

	// ErrSKUExists indicates that a non-deleted item with the SKU already exists.
	ErrSKUExists = errors.New("item with SKU already exists")
)

// InventoryServiceError wraps errors from the inventory service with context.
type InventoryServiceError struct {
	// Operation is the operation that failed (e.g., "add_item", "delete_item")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for InventoryServiceError.
func (e *InventoryServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("inventory service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("inventory service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *InventoryServiceError) Unwrap() error {
	return e.Err
}

// NewInventoryServiceError creates a new InventoryServiceError.
// Store-level sentinels are mapped to their service-level equivalents and
// returned directly so callers can test them with errors.Is; everything else
// is wrapped with operation context.
func NewInventoryServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrSKUExists) {
		return err
	}

	if errors.Is(err, store.ErrItemNotFound) {
		return ErrItemNotFound
	}
	if errors.Is(err, store.ErrSKUExists) {
		return ErrSKUExists
	}

	return &InventoryServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
