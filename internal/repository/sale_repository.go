package repository

import (
	"context"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/store"
)

var salesCollection = store.Collection[domain.Sale]{
	Sheet: "Sales",
	Header: []string{
		"ID", "User ID", "User Name", "Driver ID", "Driver Name",
		"Charge Type", "Charge Amount", "Due Amount", "Due Collection",
		"Total Due", "Created At", "Created By",
	},
	Encode: func(s domain.Sale) []string {
		return []string{
			s.ID,
			s.UserID,
			s.UserName,
			s.DriverID,
			s.DriverName,
			string(s.ChargeType),
			s.ChargeAmount.String(),
			s.DueAmount.String(),
			s.DueCollection.String(),
			s.TotalDue.String(),
			store.EncodeTime(s.CreatedAt),
			s.CreatedBy,
		}
	},
	Decode: func(row []string) domain.Sale {
		chargeType := domain.ChargeType(row[5])
		if chargeType == "" {
			chargeType = domain.ChargeWith
		}
		return domain.Sale{
			ID:            row[0],
			UserID:        row[1],
			UserName:      row[2],
			DriverID:      row[3],
			DriverName:    row[4],
			ChargeType:    chargeType,
			ChargeAmount:  store.DecodeDecimal(row[6]),
			DueAmount:     store.DecodeDecimal(row[7]),
			DueCollection: store.DecodeDecimal(row[8]),
			TotalDue:      store.DecodeDecimal(row[9]),
			CreatedAt:     store.DecodeTime(row[10]),
			CreatedBy:     row[11],
		}
	},
}

type SaleRepository struct {
	Store *store.Store
}

// Create appends the sale row. Balance bookkeeping belongs to the sales
// service, not here.
func (r SaleRepository) Create(ctx context.Context, s domain.Sale) error {
	return store.Insert(ctx, r.Store, salesCollection, s)
}

func (r SaleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	return store.List(ctx, r.Store, salesCollection)
}

func (r SaleRepository) ListByUser(ctx context.Context, userID string) ([]domain.Sale, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Sale, 0, len(all))
	for _, s := range all {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}
