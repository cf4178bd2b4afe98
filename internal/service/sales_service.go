package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesService is the only path allowed to move an account's running due
// balance. Each recorded sale applies delta = dueAmount - dueCollection to
// the owner's balance and snapshots the post-delta total onto the sale row.
type SalesService struct {
	Users   repository.UserRepository
	Sales   repository.SaleRepository
	Drivers repository.DriverRepository
	Audit   Auditor
	Logger  *slog.Logger

	// mu serializes whole recordSale sequences so the snapshot read and the
	// delta apply cannot interleave between two sales for the same account.
	mu sync.Mutex
}

type RecordSaleInput struct {
	UserID        string
	DriverID      string
	ChargeType    domain.ChargeType
	ChargeAmount  decimal.Decimal
	DueAmount     decimal.Decimal
	DueCollection decimal.Decimal
}

// RecordSale inserts the sale row, then applies the due delta to the owning
// account. The two steps cross collections with no transaction; when the
// second step fails the sale stays committed and a reconciliation-needed
// warning is logged instead of failing the call.
func (s *SalesService) RecordSale(ctx context.Context, in RecordSaleInput, actor domain.AuthUser) (*domain.Sale, error) {
	if in.ChargeType != domain.ChargeWith && in.ChargeType != domain.ChargeNone {
		return nil, fmt.Errorf("%w: unknown charge type %q", ErrValidation, in.ChargeType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.Users.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("account %s: %w", in.UserID, repository.ErrNotFound)
		}
		return nil, err
	}
	driver, err := s.Drivers.GetByID(ctx, in.DriverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("driver %s: %w", in.DriverID, repository.ErrNotFound)
		}
		return nil, err
	}

	delta := in.DueAmount.Sub(in.DueCollection)
	sale := domain.Sale{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		UserName:      user.Name,
		DriverID:      driver.ID,
		DriverName:    driver.Name,
		ChargeType:    in.ChargeType,
		ChargeAmount:  in.ChargeAmount,
		DueAmount:     in.DueAmount,
		DueCollection: in.DueCollection,
		TotalDue:      user.TotalDue.Add(delta), // balance right after this sale
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     actor.ID,
	}

	if err := s.Sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	if _, err := s.Users.ApplyDueDelta(ctx, user.ID, delta); err != nil {
		// The sale row is committed; only the balance is stale now.
		s.Logger.Warn("sale recorded but balance update failed; reconciliation needed",
			"saleId", sale.ID, "userId", user.ID, "delta", delta.String(), "err", err)
	}

	s.Audit.Record(ctx, AuditEntry{
		Actor:   actor,
		Action:  domain.ActionCreateSale,
		Details: fmt.Sprintf("sale for %s (%s), due delta %s", user.Name, user.Mobile, delta.String()),
	})
	return &sale, nil
}

// ListSales returns sales, optionally filtered to one owning account.
func (s *SalesService) ListSales(ctx context.Context, userID string) ([]domain.Sale, error) {
	if userID != "" {
		return s.Sales.ListByUser(ctx, userID)
	}
	return s.Sales.List(ctx)
}
