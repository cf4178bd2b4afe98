package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fleetledger-backend/internal/config"
	"fleetledger-backend/internal/handler"
	"fleetledger-backend/internal/repository"
	"fleetledger-backend/internal/server"
	"fleetledger-backend/internal/service"
	"fleetledger-backend/internal/sheetdb"
	"fleetledger-backend/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var backend sheetdb.Backend
	if cfg.SpreadsheetID != "" {
		sheetsBackend, err := sheetdb.New(ctx, cfg)
		if err != nil {
			logger.Error("sheets client init failed", "err", err)
			os.Exit(1)
		}
		backend = sheetsBackend
	} else {
		logger.Warn("SPREADSHEET_ID not set, using in-memory backend; data will not persist")
		backend = sheetdb.NewMemory()
	}

	st := store.New(backend)

	users := repository.UserRepository{Store: st}
	sales := repository.SaleRepository{Store: st}
	costs := repository.CostRepository{Store: st}
	drivers := repository.DriverRepository{Store: st}
	costTypes := repository.CostTypeRepository{Store: st}
	activityLogs := repository.ActivityLogRepository{Store: st}

	seedHash, err := service.HashPassword("123456")
	if err != nil {
		logger.Error("seed password hash failed", "err", err)
		os.Exit(1)
	}
	if seeded, err := users.EnsureDefaultSuperadmin(ctx, seedHash); err != nil {
		logger.Error("superadmin seed failed", "err", err)
		os.Exit(1)
	} else if seeded != nil {
		logger.Info("seeded default superadmin", "mobile", seeded.Mobile)
	}

	tokens := service.TokenService{Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL}
	auditor := service.Auditor{Logs: activityLogs, Logger: logger}
	authService := service.AuthService{
		Config: cfg,
		Users:  users,
		Tokens: tokens,
		Audit:  auditor,
		Logger: logger,
	}
	salesService := &service.SalesService{
		Users:   users,
		Sales:   sales,
		Drivers: drivers,
		Audit:   auditor,
		Logger:  logger,
	}

	router := server.NewRouter(logger, tokens, server.Handlers{
		Health:       handler.HealthHandler{Store: st},
		Auth:         handler.AuthHandler{Service: &authService},
		Users:        handler.UserHandler{Repo: users, Audit: auditor},
		Sales:        handler.SaleHandler{Service: salesService},
		Costs:        handler.CostHandler{Repo: costs, Types: costTypes, Audit: auditor},
		Drivers:      handler.DriverHandler{Repo: drivers, Audit: auditor},
		CostTypes:    handler.CostTypeHandler{Repo: costTypes, Audit: auditor},
		ActivityLogs: handler.ActivityLogHandler{Repo: activityLogs},
		Dashboard:    handler.DashboardHandler{Users: users, Sales: sales, Costs: costs},
	})

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}
