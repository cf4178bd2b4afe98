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

type DriverHandler struct {
	Repo  repository.DriverRepository
	Audit service.Auditor
}

func (h DriverHandler) RegisterRoutes(r chi.Router) {
	r.Get("/drivers", h.list)
	r.Post("/drivers", h.create)
}

func (h DriverHandler) list(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.Repo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(drivers))
	for _, d := range drivers {
		resp = append(resp, map[string]any{
			"id":        d.ID,
			"name":      d.Name,
			"mobile":    d.Mobile,
			"createdAt": d.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h DriverHandler) create(w http.ResponseWriter, r *http.Request) {
	identity := authctx.FromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Name   string `json:"name"`
		Mobile string `json:"mobile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	d, err := h.Repo.Create(r.Context(), req.Name, req.Mobile)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.Audit.Record(r.Context(), service.AuditEntry{
		Actor:   *identity,
		Action:  domain.ActionCreateDriver,
		Details: "created driver: " + d.Name,
	})
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        d.ID,
		"name":      d.Name,
		"mobile":    d.Mobile,
		"createdAt": d.CreatedAt.UTC().Format(time.RFC3339),
	})
}
