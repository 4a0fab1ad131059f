package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stockline/inventory-api/internal/domain"
	"github.com/stockline/inventory-api/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: service.ErrItemNotFound, want: http.StatusNotFound},
		// Duplicate create maps to 404 per the existing API contract.
		{name: "duplicate sku", err: service.ErrSKUExists, want: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("op: %w", service.ErrItemNotFound), want: http.StatusNotFound},
		{name: "invalid sku", err: domain.ErrInvalidSKU, want: http.StatusBadRequest},
		{name: "invalid quantity", err: domain.ErrInvalidQuantity, want: http.StatusBadRequest},
		{name: "missing user", err: domain.ErrEmptyLogUserID, want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "nil", err: nil, want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Item with SKU ABC123 does not exist",
		GetSafeErrorMessage(service.ErrItemNotFound, "ABC123"))
	assert.Equal(t, "Item with SKU ABC123 already exists",
		GetSafeErrorMessage(service.ErrSKUExists, "ABC123"))

	// Unknown errors never expose their content.
	internal := errors.New("pg: password authentication failed")
	msg := GetSafeErrorMessage(internal, "ABC123")
	assert.Equal(t, "Internal server error", msg)
}
