package server

import (
	"net/http"
	"strings"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/server/authctx"
	"fleetledger-backend/internal/service"
)

// AuthMiddleware verifies the bearer token and sets the identity in context.
func AuthMiddleware(tokens service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			identity, err := tokens.Verify(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(authctx.WithIdentity(r.Context(), *identity)))
		})
	}
}

// RequireRole ensures the identity ranks at least as high as required.
func RequireRole(required domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := authctx.FromContext(r.Context())
			if identity == nil || !service.MeetsRole(identity.Role, required) {
				writeAuthError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission gates a subtree on one permission tag.
func RequirePermission(p service.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := authctx.FromContext(r.Context())
			if identity == nil || !service.HasPermission(identity.Role, p) {
				writeAuthError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + http.StatusText(status) + `","message":"` + message + `"}`))
}
