package handler

import (
	"encoding/json"
	"net/http"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/repository"
	"fleetledger-backend/internal/server/authctx"
	"fleetledger-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type CostTypeHandler struct {
	Repo  repository.CostTypeRepository
	Audit service.Auditor
}

func (h CostTypeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/cost-types", h.list)
	r.Post("/cost-types", h.create)
}

func (h CostTypeHandler) list(w http.ResponseWriter, r *http.Request) {
	types, err := h.Repo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(types))
	for _, t := range types {
		resp = append(resp, map[string]any{
			"id":       t.ID,
			"name":     t.Name,
			"isActive": t.IsActive,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CostTypeHandler) create(w http.ResponseWriter, r *http.Request) {
	identity := authctx.FromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Name     string `json:"name"`
		IsActive *bool  `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	t, err := h.Repo.Create(r.Context(), req.Name, active)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.Audit.Record(r.Context(), service.AuditEntry{
		Actor:   *identity,
		Action:  domain.ActionCreateCostType,
		Details: "created cost type: " + t.Name,
	})
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       t.ID,
		"name":     t.Name,
		"isActive": t.IsActive,
	})
}
