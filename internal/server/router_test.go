package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fleetledger-backend/internal/config"
	"fleetledger-backend/internal/handler"
	"fleetledger-backend/internal/repository"
	"fleetledger-backend/internal/service"
	"fleetledger-backend/internal/sheetdb"
	"fleetledger-backend/internal/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	st := store.New(sheetdb.NewMemory())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := repository.UserRepository{Store: st}
	salesRepo := repository.SaleRepository{Store: st}
	costs := repository.CostRepository{Store: st}
	drivers := repository.DriverRepository{Store: st}
	costTypes := repository.CostTypeRepository{Store: st}
	logs := repository.ActivityLogRepository{Store: st}
	auditor := service.Auditor{Logs: logs, Logger: logger}

	hash, err := service.HashPassword("123456")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := users.EnsureDefaultSuperadmin(context.Background(), hash); err != nil {
		t.Fatal(err)
	}

	tokens := service.TokenService{Secret: []byte("test-secret"), TTL: time.Hour}
	authService := service.AuthService{
		Config: config.Config{},
		Users:  users,
		Tokens: tokens,
		Audit:  auditor,
		Logger: logger,
	}
	salesService := &service.SalesService{
		Users:   users,
		Sales:   salesRepo,
		Drivers: drivers,
		Audit:   auditor,
		Logger:  logger,
	}

	router := NewRouter(logger, tokens, Handlers{
		Health:       handler.HealthHandler{Store: st},
		Auth:         handler.AuthHandler{Service: &authService},
		Users:        handler.UserHandler{Repo: users, Audit: auditor},
		Sales:        handler.SaleHandler{Service: salesService},
		Costs:        handler.CostHandler{Repo: costs, Types: costTypes, Audit: auditor},
		Drivers:      handler.DriverHandler{Repo: drivers, Audit: auditor},
		CostTypes:    handler.CostTypeHandler{Repo: costTypes, Audit: auditor},
		ActivityLogs: handler.ActivityLogHandler{Repo: logs},
		Dashboard:    handler.DashboardHandler{Users: users, Sales: salesRepo, Costs: costs},
	})
	return router
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func loginAs(t *testing.T, router http.Handler, mobile, password string) string {
	t.Helper()
	rec, env := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"mobile":   mobile,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", mobile, rec.Code, rec.Body.String())
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	return data.Token
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("health status = %q", body["status"])
	}
}

func TestSaleFlowEndToEnd(t *testing.T) {
	router := newTestRouter(t)
	adminToken := loginAs(t, router, repository.SeedSuperadminMobile, "123456")

	// Register an account and a driver, record a sale against them.
	rec, env := doJSON(t, router, http.MethodPost, "/auth/register", adminToken, map[string]any{
		"name":   "Customer One",
		"mobile": "1710000001",
		"role":   "user",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d body %s", rec.Code, rec.Body.String())
	}
	var customer struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &customer); err != nil {
		t.Fatal(err)
	}

	rec, env = doJSON(t, router, http.MethodPost, "/drivers", adminToken, map[string]string{
		"name":   "Driver One",
		"mobile": "1720000001",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create driver: status %d body %s", rec.Code, rec.Body.String())
	}
	var driver struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &driver); err != nil {
		t.Fatal(err)
	}

	rec, env = doJSON(t, router, http.MethodPost, "/sales", adminToken, map[string]any{
		"userId":        customer.ID,
		"driverId":      driver.ID,
		"chargeType":    "withCharge",
		"chargeAmount":  "500",
		"dueAmount":     "300",
		"dueCollection": "100",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("record sale: status %d body %s", rec.Code, rec.Body.String())
	}
	var sale struct {
		TotalDue string `json:"totalDue"`
	}
	if err := json.Unmarshal(env.Data, &sale); err != nil {
		t.Fatal(err)
	}
	if sale.TotalDue != "200" {
		t.Errorf("sale totalDue = %q, want 200", sale.TotalDue)
	}

	// The customer logs in with the default secret and only sees own sales.
	customerToken := loginAs(t, router, "1710000001", "000001")
	rec, env = doJSON(t, router, http.MethodGet, "/sales?userId=someone-else", customerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list sales: status %d body %s", rec.Code, rec.Body.String())
	}
	var sales []struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(env.Data, &sales); err != nil {
		t.Fatal(err)
	}
	if len(sales) != 1 || sales[0].UserID != customer.ID {
		t.Errorf("customer sees %+v, want only own sale", sales)
	}
}

func TestRouteAuthorization(t *testing.T) {
	router := newTestRouter(t)
	adminToken := loginAs(t, router, repository.SeedSuperadminMobile, "123456")

	rec, _ := doJSON(t, router, http.MethodPost, "/auth/register", adminToken, map[string]any{
		"name":   "Plain User",
		"mobile": "1710000002",
		"role":   "user",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d", rec.Code)
	}
	userToken := loginAs(t, router, "1710000002", "000002")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no token on protected route", http.MethodGet, "/sales", "", http.StatusUnauthorized},
		{"user cannot create sales", http.MethodPost, "/sales", userToken, http.StatusForbidden},
		{"user cannot list users", http.MethodGet, "/users", userToken, http.StatusForbidden},
		{"user cannot view dashboard", http.MethodGet, "/dashboard", userToken, http.StatusForbidden},
		{"user cannot view activity logs", http.MethodGet, "/activity-logs", userToken, http.StatusForbidden},
		{"user cannot create costs", http.MethodPost, "/costs", userToken, http.StatusForbidden},
		{"user can list own sales", http.MethodGet, "/sales", userToken, http.StatusOK},
		{"user can view own profile", http.MethodGet, "/auth/me", userToken, http.StatusOK},
		{"admin can view dashboard", http.MethodGet, "/dashboard", adminToken, http.StatusOK},
		{"admin can view activity logs", http.MethodGet, "/activity-logs", adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doJSON(t, router, tt.method, tt.path, tt.token, map[string]string{})
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"mobile":   repository.SeedSuperadminMobile,
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if env.Status != "error" {
		t.Errorf("envelope status = %q, want error", env.Status)
	}
}

func TestDuplicateMobileConflict(t *testing.T) {
	router := newTestRouter(t)
	adminToken := loginAs(t, router, repository.SeedSuperadminMobile, "123456")

	payload := map[string]any{"name": "Dup", "mobile": "1710000003", "role": "user"}
	if rec, _ := doJSON(t, router, http.MethodPost, "/auth/register", adminToken, payload); rec.Code != http.StatusCreated {
		t.Fatalf("first register: status %d", rec.Code)
	}
	rec, _ := doJSON(t, router, http.MethodPost, "/auth/register", adminToken, payload)
	if rec.Code != http.StatusConflict {
		t.Errorf("second register: status %d, want 409", rec.Code)
	}
}
