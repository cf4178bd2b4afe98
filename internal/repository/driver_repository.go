package repository

import (
	"context"
	"time"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/store"
	"github.com/google/uuid"
)

var driversCollection = store.Collection[domain.Driver]{
	Sheet:  "Drivers",
	Header: []string{"ID", "Name", "Mobile", "Created At"},
	Encode: func(d domain.Driver) []string {
		return []string{d.ID, d.Name, d.Mobile, store.EncodeTime(d.CreatedAt)}
	},
	Decode: func(row []string) domain.Driver {
		return domain.Driver{
			ID:        row[0],
			Name:      row[1],
			Mobile:    row[2],
			CreatedAt: store.DecodeTime(row[3]),
		}
	},
}

type DriverRepository struct {
	Store *store.Store
}

func (r DriverRepository) Create(ctx context.Context, name, mobile string) (*domain.Driver, error) {
	d := domain.Driver{
		ID:        uuid.NewString(),
		Name:      name,
		Mobile:    mobile,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.Insert(ctx, r.Store, driversCollection, d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	d, err := store.Get(ctx, r.Store, driversCollection, id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r DriverRepository) List(ctx context.Context) ([]domain.Driver, error) {
	return store.List(ctx, r.Store, driversCollection)
}
