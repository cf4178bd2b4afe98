package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/server/authctx"
	"fleetledger-backend/internal/service"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tokens := service.TokenService{Secret: []byte("test-secret"), TTL: time.Hour}

	var gotIdentity *domain.AuthUser
	handler := AuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = authctx.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token", func(t *testing.T) {
		token, _, err := tokens.Issue(domain.AuthUser{ID: "u-1", Name: "Alice", Role: domain.RoleManager})
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodGet, "/sales", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotIdentity == nil || gotIdentity.ID != "u-1" || gotIdentity.Role != domain.RoleManager {
			t.Errorf("identity = %+v", gotIdentity)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sales", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sales", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("forged token", func(t *testing.T) {
		forger := service.TokenService{Secret: []byte("other-secret"), TTL: time.Hour}
		token, _, err := forger.Issue(domain.AuthUser{ID: "u-1", Role: domain.RoleSuperadmin})
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodGet, "/sales", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.UserRole
		required domain.UserRole
		want     int
	}{
		{"user blocked from manager routes", domain.RoleUser, domain.RoleManager, http.StatusForbidden},
		{"manager passes manager routes", domain.RoleManager, domain.RoleManager, http.StatusOK},
		{"manager blocked from superadmin routes", domain.RoleManager, domain.RoleSuperadmin, http.StatusForbidden},
		{"superadmin passes everywhere", domain.RoleSuperadmin, domain.RoleUser, http.StatusOK},
		{"unknown role blocked", "ghost", domain.RoleUser, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(tt.required)(okHandler())
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(authctx.WithIdentity(req.Context(), domain.AuthUser{ID: "u-1", Role: tt.role}))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	t.Run("no identity in context", func(t *testing.T) {
		handler := RequireRole(domain.RoleUser)(okHandler())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name string
		role domain.UserRole
		perm service.Permission
		want int
	}{
		{"manager can manage sales", domain.RoleManager, service.PermManageSales, http.StatusOK},
		{"manager cannot manage users", domain.RoleManager, service.PermManageUsers, http.StatusForbidden},
		{"user cannot manage sales", domain.RoleUser, service.PermManageSales, http.StatusForbidden},
		{"superadmin can view activity logs", domain.RoleSuperadmin, service.PermViewActivityLogs, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequirePermission(tt.perm)(okHandler())
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(authctx.WithIdentity(req.Context(), domain.AuthUser{ID: "u-1", Role: tt.role}))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
