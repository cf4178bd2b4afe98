package service

import (
	"context"
	"log/slog"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/repository"
)

// Auditor appends security-relevant actions to the activity log. Audit is
// observational, not authoritative: append failures are logged and never
// block or roll back the triggering operation.
type Auditor struct {
	Logs   repository.ActivityLogRepository
	Logger *slog.Logger
}

type AuditEntry struct {
	Actor     domain.AuthUser
	Action    string
	Details   string
	IPAddress string
	UserAgent string
}

func (a Auditor) Record(ctx context.Context, e AuditEntry) {
	_, err := a.Logs.Create(ctx, repository.CreateActivityLogInput{
		UserID:    e.Actor.ID,
		UserName:  e.Actor.Name,
		Action:    e.Action,
		Details:   e.Details,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
	})
	if err != nil {
		a.Logger.Warn("activity log append failed",
			"action", e.Action, "actor", e.Actor.ID, "err", err)
	}
}
