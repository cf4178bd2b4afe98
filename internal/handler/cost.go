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
	"github.com/shopspring/decimal"
)

type CostHandler struct {
	Repo  repository.CostRepository
	Types repository.CostTypeRepository
	Audit service.Auditor
}

func (h CostHandler) RegisterRoutes(r chi.Router) {
	r.Get("/costs", h.list)
	r.Post("/costs", h.create)
}

func (h CostHandler) list(w http.ResponseWriter, r *http.Request) {
	costs, err := h.Repo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(costs))
	for _, c := range costs {
		resp = append(resp, costJSON(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CostHandler) create(w http.ResponseWriter, r *http.Request) {
	identity := authctx.FromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		TypeID      string          `json:"typeId"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	costType, err := h.Types.GetByID(r.Context(), req.TypeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	cost, err := h.Repo.Create(r.Context(), repository.CreateCostInput{
		Type:        costType.Name,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedBy:   identity.ID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.Audit.Record(r.Context(), service.AuditEntry{
		Actor:   *identity,
		Action:  domain.ActionCreateCost,
		Details: "recorded cost: " + cost.Type + " " + cost.Amount.String(),
	})
	writeJSON(w, http.StatusCreated, costJSON(*cost))
}

func costJSON(c domain.Cost) map[string]any {
	return map[string]any{
		"id":          c.ID,
		"type":        c.Type,
		"amount":      c.Amount.String(),
		"description": c.Description,
		"createdAt":   c.CreatedAt.UTC().Format(time.RFC3339),
		"createdBy":   c.CreatedBy,
	}
}
