package repository

import (
	"context"
	"time"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/store"
	"github.com/google/uuid"
)

var activityLogsCollection = store.Collection[domain.ActivityLog]{
	Sheet: "ActivityLogs",
	Header: []string{
		"ID", "User ID", "User Name", "Action", "Details",
		"IP Address", "User Agent", "Created At",
	},
	Encode: func(l domain.ActivityLog) []string {
		return []string{
			l.ID,
			l.UserID,
			l.UserName,
			l.Action,
			l.Details,
			l.IPAddress,
			l.UserAgent,
			store.EncodeTime(l.CreatedAt),
		}
	},
	Decode: func(row []string) domain.ActivityLog {
		return domain.ActivityLog{
			ID:        row[0],
			UserID:    row[1],
			UserName:  row[2],
			Action:    row[3],
			Details:   row[4],
			IPAddress: row[5],
			UserAgent: row[6],
			CreatedAt: store.DecodeTime(row[7]),
		}
	},
}

type ActivityLogRepository struct {
	Store *store.Store
}

type CreateActivityLogInput struct {
	UserID    string
	UserName  string
	Action    string
	Details   string
	IPAddress string
	UserAgent string
}

// Create appends a log row. Entries are never updated or deleted.
func (r ActivityLogRepository) Create(ctx context.Context, in CreateActivityLogInput) (*domain.ActivityLog, error) {
	l := domain.ActivityLog{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		UserName:  in.UserName,
		Action:    in.Action,
		Details:   in.Details,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.Insert(ctx, r.Store, activityLogsCollection, l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r ActivityLogRepository) List(ctx context.Context) ([]domain.ActivityLog, error) {
	return store.List(ctx, r.Store, activityLogsCollection)
}
