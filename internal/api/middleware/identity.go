package middleware

import (
	"net/http"

	"github.com/stockline/inventory-api/internal/api/shared"
)

// UserIDHeader carries the acting user identifier. The value is opaque and
// trusted verbatim from upstream; only its presence is enforced here.
const UserIDHeader = "x-user-id"

// RequireUserID extracts the acting user identifier from the x-user-id
// header into the request context. Requests without the header (or with an
// empty value) are rejected before reaching the handler, since every
// mutation must be attributable in the audit log.
func RequireUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Missing required header: x-user-id")
			return
		}

		ctx := shared.SetUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
