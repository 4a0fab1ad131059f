package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TransactionType classifies a quantity-affecting inventory transaction.
type TransactionType string

// Possible transaction types
const (
	TransactionTypeCreate TransactionType = "CREATE"
	TransactionTypeUpdate TransactionType = "UPDATE"
	TransactionTypeDelete TransactionType = "DELETE"
)

// Common validation errors for InventoryLog
var (
	ErrEmptyLogID             = errors.New("log ID cannot be empty")
	ErrEmptyLogUserID         = errors.New("log user ID cannot be empty")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)

// InventoryLog is one append-only audit record of a quantity-affecting
// transaction. The quantity field carries the absolute stock for CREATE, the
// raw signed delta for UPDATE, and the remaining stock at deletion time for
// DELETE. Log rows reference items by SKU only and survive item soft-deletion.
type InventoryLog struct {
	ID        uuid.UUID       `json:"id"`
	SKU       string          `json:"sku"`
	UserID    string          `json:"user_id"`
	Type      TransactionType `json:"type"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewInventoryLog creates a new InventoryLog attributed to the given user.
// It generates a new UUID for the log ID and sets the creation timestamp.
// Returns an error if validation fails.
func NewInventoryLog(
	sku string,
	userID string,
	txType TransactionType,
	quantity int,
) (*InventoryLog, error) {
	log := &InventoryLog{
		ID:        uuid.New(),
		SKU:       sku,
		UserID:    userID,
		Type:      txType,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the InventoryLog has valid data.
// Returns an error if any field fails validation.
func (l *InventoryLog) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyLogID
	}

	if err := ValidateSKU(l.SKU); err != nil {
		return err
	}

	if l.UserID == "" {
		return ErrEmptyLogUserID
	}

	if !isValidTransactionType(l.Type) {
		return ErrInvalidTransactionType
	}

	return nil
}

// isValidTransactionType checks if the given type is a recognized value.
func isValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionTypeCreate, TransactionTypeUpdate, TransactionTypeDelete:
		return true
	default:
		return false
	}
}
