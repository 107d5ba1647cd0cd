package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/twacha/skincare-assistant/pkg/logger"
)

// RequestID stamps each request with an id carried in the context and echoed
// back in the X-Request-ID header; the log handler prints it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := logger.ContextWithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
