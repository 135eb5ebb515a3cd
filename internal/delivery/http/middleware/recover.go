package middleware

import (
	"log/slog"
	"net/http"

	h "confregistry/internal/delivery/http/helpers"
)

// Recover returns a handler that turns a panicking request into a 500 JSON
// error instead of tearing down the connection. The panic value is logged,
// never sent to the client.
func Recover(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
				)
				h.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
