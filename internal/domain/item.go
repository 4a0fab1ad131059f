package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for InventoryItem
var (
	ErrEmptyItemID     = errors.New("item ID cannot be empty")
	ErrInvalidSKU      = errors.New("SKU must be a non-empty uppercase alphanumeric string")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// skuPattern matches valid SKUs: non-empty, uppercase letters and digits only.
var skuPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// InventoryItem represents a stock-keeping unit and its current available
// quantity. Items are never physically removed; DeletedAt marks an item as
// logically deleted, and at most one non-deleted item exists per SKU.
type InventoryItem struct {
	ID        uuid.UUID  `json:"id"`
	SKU       string     `json:"sku"`
	Available int        `json:"available"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewInventoryItem creates a new InventoryItem with the given SKU and initial
// quantity. It generates a new UUID for the item ID and sets the
// creation/update timestamps.
// Returns an error if validation fails.
func NewInventoryItem(sku string, quantity int) (*InventoryItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	now := time.Now().UTC()
	item := &InventoryItem{
		ID:        uuid.New(),
		SKU:       sku,
		Available: quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the InventoryItem has valid data.
// Returns an error if any field fails validation.
func (i *InventoryItem) Validate() error {
	if i.ID == uuid.Nil {
		return ErrEmptyItemID
	}

	// Available is deliberately not range-checked here: quantity deltas may
	// drive it to zero or below after creation.
	return ValidateSKU(i.SKU)
}

// IsDeleted reports whether the item has been soft-deleted.
func (i *InventoryItem) IsDeleted() bool {
	return i.DeletedAt != nil
}

// ValidateSKU checks that a SKU is non-empty and uppercase alphanumeric.
// Returns ErrInvalidSKU if the SKU is malformed.
func ValidateSKU(sku string) error {
	if !skuPattern.MatchString(sku) {
		return ErrInvalidSKU
	}
	return nil
}
