package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/server/authctx"
	"fleetledger-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	Service *service.AuthService
}

func (h AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.login)
}

func (h AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/auth/logout", h.logout)
	r.Post("/auth/change-password", h.changePassword)
	r.Get("/auth/me", h.me)
}

func (h AuthHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/auth/register", h.register)
}

func (h AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	res, err := h.Service.Login(r.Context(), service.LoginInput{
		Mobile:    req.Mobile,
		Password:  req.Password,
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":       res.Token,
		"expiresAt":   res.ExpiresAt.UTC().Format(time.RFC3339),
		"user":        userJSON(res.User),
		"permissions": res.Permissions,
	})
}

func (h AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	identity := authctx.FromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.Service.Logout(r.Context(), *identity, r.RemoteAddr, r.UserAgent())
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	identity := authctx.FromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          identity.ID,
		"name":        identity.Name,
		"mobile":      identity.Mobile,
		"role":        string(identity.Role),
		"permissions": service.Permissions(identity.Role),
	})
}

func (h AuthHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	identity := authctx.FromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "currentPassword and newPassword are required")
		return
	}
	if err := h.Service.ChangePassword(r.Context(), identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	identity := authctx.FromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Name        string `json:"name"`
		Mobile      string `json:"mobile"`
		Password    string `json:"password"`
		Role        string `json:"role"`
		Image       string `json:"image"`
		NIDNo       string `json:"nidNo"`
		DateOfBirth string `json:"dateOfBirth"`
		IsActive    *bool  `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	user, err := h.Service.Register(r.Context(), service.RegisterInput{
		Name:        req.Name,
		Mobile:      req.Mobile,
		Password:    req.Password,
		Role:        domain.UserRole(req.Role),
		Image:       req.Image,
		NIDNo:       req.NIDNo,
		DateOfBirth: req.DateOfBirth,
		IsActive:    req.IsActive,
	}, *identity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userJSON(*user))
}
