package server

import (
	"net/http"
	"time"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/handler"
	"fleetledger-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Health       handler.HealthHandler
	Auth         handler.AuthHandler
	Users        handler.UserHandler
	Sales        handler.SaleHandler
	Costs        handler.CostHandler
	Drivers      handler.DriverHandler
	CostTypes    handler.CostTypeHandler
	ActivityLogs handler.ActivityLogHandler
	Dashboard    handler.DashboardHandler
}

// NewRouter wires HTTP routes and middleware.
func NewRouter(logger *slog.Logger, tokens service.TokenService, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	h.Health.RegisterRoutes(r)
	h.Auth.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(tokens))

		h.Auth.RegisterProtectedRoutes(pr)
		h.Sales.RegisterSelfRoutes(pr)

		pr.Group(func(sr chi.Router) {
			sr.Use(RequirePermission(service.PermManageSales))
			h.Sales.RegisterManageRoutes(sr)
			h.Drivers.RegisterRoutes(sr)
		})
		pr.Group(func(cr chi.Router) {
			cr.Use(RequirePermission(service.PermManageCosts))
			h.Costs.RegisterRoutes(cr)
			h.CostTypes.RegisterRoutes(cr)
		})
		pr.Group(func(mr chi.Router) {
			mr.Use(RequireRole(domain.RoleManager))
			h.Dashboard.RegisterRoutes(mr)
		})
		pr.Group(func(ar chi.Router) {
			ar.Use(RequireRole(domain.RoleSuperadmin))
			h.Auth.RegisterAdminRoutes(ar)
			h.Users.RegisterRoutes(ar)
			h.ActivityLogs.RegisterRoutes(ar)
		})
	})

	return r
}
