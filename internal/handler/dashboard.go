package handler

import (
	"net/http"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type DashboardHandler struct {
	Users repository.UserRepository
	Sales repository.SaleRepository
	Costs repository.CostRepository
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.stats)
}

func (h DashboardHandler) stats(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	sales, err := h.Sales.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	costs, err := h.Costs.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	stats := domain.DashboardStats{
		TotalSales: decimal.Zero,
		TotalDue:   decimal.Zero,
		TotalCost:  decimal.Zero,
		TotalCash:  decimal.Zero,
		TotalAuto:  len(sales),
		TotalUsers: len(users),
	}
	for _, s := range sales {
		stats.TotalSales = stats.TotalSales.Add(s.ChargeAmount)
		stats.TotalCash = stats.TotalCash.Add(s.DueCollection)
	}
	for _, u := range users {
		stats.TotalDue = stats.TotalDue.Add(u.TotalDue)
	}
	for _, c := range costs {
		stats.TotalCost = stats.TotalCost.Add(c.Amount)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalSales": stats.TotalSales.String(),
		"totalDue":   stats.TotalDue.String(),
		"totalCost":  stats.TotalCost.String(),
		"totalCash":  stats.TotalCash.String(),
		"totalAuto":  stats.TotalAuto,
		"totalUsers": stats.TotalUsers,
	})
}
