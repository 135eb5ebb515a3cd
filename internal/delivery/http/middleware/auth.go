package middleware

import (
	"log/slog"
	"net/http"

	h "confregistry/internal/delivery/http/helpers"
)

// RequireAdmin returns a wrapper that checks the shared admin password before
// calling next. The password is read from the "password" query parameter or,
// failing that, the X-Admin-Password header. A wrong or missing password gets
// a 401 and next is never called.
func RequireAdmin(password string, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if password == "" {
				logger.ErrorContext(r.Context(), "admin password not configured, refusing request", "path", r.URL.Path)
				h.WriteJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			supplied := r.URL.Query().Get("password")
			if supplied == "" {
				supplied = r.Header.Get("X-Admin-Password")
			}
			if supplied != password {
				logger.WarnContext(r.Context(), "admin auth failed", "path", r.URL.Path)
				h.WriteJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next(w, r)
		}
	}
}
