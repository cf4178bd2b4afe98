package handler

import (
	"net/http"
	"time"

	"fleetledger-backend/internal/repository"
	"github.com/go-chi/chi/v5"
)

type ActivityLogHandler struct {
	Repo repository.ActivityLogRepository
}

func (h ActivityLogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/activity-logs", h.list)
}

func (h ActivityLogHandler) list(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Repo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, map[string]any{
			"id":        l.ID,
			"userId":    l.UserID,
			"userName":  l.UserName,
			"action":    l.Action,
			"details":   l.Details,
			"ipAddress": l.IPAddress,
			"userAgent": l.UserAgent,
			"createdAt": l.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
