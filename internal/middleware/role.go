package middleware

import (
	"log/slog"
	"net/http"

	"github.com/legalconnect/legalconnect/internal/auth"
	"github.com/legalconnect/legalconnect/internal/model"
)

// RequireRole returns middleware that enforces a role on the verified
// identity. Must be applied after Auth. Admin satisfies every check.
func RequireRole(logger *slog.Logger, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "invalid or missing token")
				return
			}

			if !identity.HasRole(role) {
				logger.Warn("authorization failed",
					slog.Int64("user_id", identity.UserID),
					slog.String("required_role", role),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				msg := "insufficient permissions"
				if role == model.RoleAdmin {
					msg = "admin access required"
				}
				writeError(w, http.StatusForbidden, msg)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin restricts a route to admin accounts.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return RequireRole(logger, model.RoleAdmin)
}
