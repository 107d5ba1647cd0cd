package middleware

import (
	"net/http"
	"strings"

	"github.com/twacha/skincare-assistant/pkg/api/response"
)

type Authenticator interface {
	IsAuthorized(token string) bool
}

// Auth rejects requests whose bearer token the authenticator does not know.
func Auth(authenticator Authenticator) func(http.Handler) http.Handler {
	writer := response.JSONResponseWriter{}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !authenticator.IsAuthorized(token) {
				writer.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
