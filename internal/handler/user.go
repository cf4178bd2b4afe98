package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/repository"
	"fleetledger-backend/internal/server/authctx"
	"fleetledger-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	Repo  repository.UserRepository
	Audit service.Auditor
}

func (h UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.list)
	r.Get("/users/{id}", h.get)
	r.Put("/users/{id}", h.update)
	r.Delete("/users/{id}", h.delete)
}

func (h UserHandler) list(w http.ResponseWriter, r *http.Request) {
	if mobile := r.URL.Query().Get("mobile"); mobile != "" {
		u, err := h.Repo.GetByMobile(r.Context(), mobile)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{userJSON(*u)})
		return
	}

	users, err := h.Repo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(users))
	for _, u := range users {
		resp = append(resp, userJSON(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h UserHandler) get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userJSON(*u))
}

func (h UserHandler) update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		Mobile      *string `json:"mobile"`
		Role        *string `json:"role"`
		Image       *string `json:"image"`
		NIDNo       *string `json:"nidNo"`
		DateOfBirth *string `json:"dateOfBirth"`
		IsActive    *bool   `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	params := repository.UpdateUserParams{
		Name:        req.Name,
		Mobile:      req.Mobile,
		Image:       req.Image,
		NIDNo:       req.NIDNo,
		DateOfBirth: req.DateOfBirth,
		IsActive:    req.IsActive,
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		params.Role = &role
	}

	u, err := h.Repo.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if identity := authctx.FromContext(r.Context()); identity != nil {
		h.Audit.Record(r.Context(), service.AuditEntry{
			Actor:   *identity,
			Action:  domain.ActionUpdateUser,
			Details: "updated user: " + u.Name + " (" + u.Mobile + ")",
		})
	}
	writeJSON(w, http.StatusOK, userJSON(*u))
}

func (h UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	u, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	if identity := authctx.FromContext(r.Context()); identity != nil {
		h.Audit.Record(r.Context(), service.AuditEntry{
			Actor:   *identity,
			Action:  domain.ActionDeleteUser,
			Details: "deleted user: " + u.Name + " (" + u.Mobile + ")",
		})
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userJSON renders an account without its credential digest.
func userJSON(u domain.User) map[string]any {
	return map[string]any{
		"id":          u.ID,
		"name":        u.Name,
		"mobile":      u.Mobile,
		"role":        string(u.Role),
		"image":       u.Image,
		"nidNo":       u.NIDNo,
		"dateOfBirth": u.DateOfBirth,
		"totalDue":    u.TotalDue.String(),
		"isActive":    u.IsActive,
		"createdAt":   u.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":   u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
