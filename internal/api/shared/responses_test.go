package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondEnvelope(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
	rec := httptest.NewRecorder()

	Respond(rec, req, http.StatusOK, "List of inventory items", []string{"ABC123"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "List of inventory items", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestRespondWithErrorOmitsData(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/inventory/X1", nil)
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusNotFound, "Item with SKU X1 does not exist")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"data"`,
		"error envelopes carry a message only")
}
