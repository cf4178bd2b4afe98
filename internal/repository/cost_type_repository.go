package repository

import (
	"context"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/store"
	"github.com/google/uuid"
)

var costTypesCollection = store.Collection[domain.CostType]{
	Sheet:  "CostTypes",
	Header: []string{"ID", "Name", "Is Active"},
	Encode: func(t domain.CostType) []string {
		return []string{t.ID, t.Name, store.EncodeBool(t.IsActive)}
	},
	Decode: func(row []string) domain.CostType {
		return domain.CostType{
			ID:       row[0],
			Name:     row[1],
			IsActive: store.DecodeBool(row[2]),
		}
	},
}

type CostTypeRepository struct {
	Store *store.Store
}

func (r CostTypeRepository) Create(ctx context.Context, name string, active bool) (*domain.CostType, error) {
	t := domain.CostType{
		ID:       uuid.NewString(),
		Name:     name,
		IsActive: active,
	}
	if err := store.Insert(ctx, r.Store, costTypesCollection, t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r CostTypeRepository) GetByID(ctx context.Context, id string) (*domain.CostType, error) {
	t, err := store.Get(ctx, r.Store, costTypesCollection, id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r CostTypeRepository) List(ctx context.Context) ([]domain.CostType, error) {
	return store.List(ctx, r.Store, costTypesCollection)
}
