package repository

import (
	"context"
	"time"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var costsCollection = store.Collection[domain.Cost]{
	Sheet:  "Costs",
	Header: []string{"ID", "Type", "Amount", "Description", "Created At", "Created By"},
	Encode: func(c domain.Cost) []string {
		return []string{
			c.ID,
			c.Type,
			c.Amount.String(),
			c.Description,
			store.EncodeTime(c.CreatedAt),
			c.CreatedBy,
		}
	},
	Decode: func(row []string) domain.Cost {
		return domain.Cost{
			ID:          row[0],
			Type:        row[1],
			Amount:      store.DecodeDecimal(row[2]),
			Description: row[3],
			CreatedAt:   store.DecodeTime(row[4]),
			CreatedBy:   row[5],
		}
	},
}

type CostRepository struct {
	Store *store.Store
}

type CreateCostInput struct {
	Type        string
	Amount      decimal.Decimal
	Description string
	CreatedBy   string
}

func (r CostRepository) Create(ctx context.Context, in CreateCostInput) (*domain.Cost, error) {
	c := domain.Cost{
		ID:          uuid.NewString(),
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   in.CreatedBy,
	}
	if err := store.Insert(ctx, r.Store, costsCollection, c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r CostRepository) List(ctx context.Context) ([]domain.Cost, error) {
	return store.List(ctx, r.Store, costsCollection)
}
