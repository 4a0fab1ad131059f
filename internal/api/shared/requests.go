package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse
var validate = validator.New()

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v any) error {
	return validate.Struct(v)
}

// ValidateVar validates a single value against a validator tag expression,
// e.g. a path parameter against "required,uppercase,alphanum".
func ValidateVar(value any, tag string) error {
	return validate.Var(value, tag)
}
