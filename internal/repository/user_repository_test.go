package repository

import (
	"context"
	"errors"
	"testing"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/sheetdb"
	"fleetledger-backend/internal/store"
	"github.com/shopspring/decimal"
)

func newUserRepo(t *testing.T) UserRepository {
	t.Helper()
	return UserRepository{Store: store.New(sheetdb.NewMemory())}
}

func TestCreateRejectsDuplicateMobile(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	params := CreateUserParams{Name: "First", Mobile: "1710000001", Role: domain.RoleUser, IsActive: true}
	if _, err := repo.Create(ctx, params); err != nil {
		t.Fatal(err)
	}
	params.Name = "Second"
	if _, err := repo.Create(ctx, params); !errors.Is(err, ErrDuplicateMobile) {
		t.Errorf("got %v, want ErrDuplicateMobile", err)
	}
}

func TestUpdateRejectsMobileTakenByOther(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	a, err := repo.Create(ctx, CreateUserParams{Name: "A", Mobile: "1710000001", Role: domain.RoleUser, IsActive: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Create(ctx, CreateUserParams{Name: "B", Mobile: "1710000002", Role: domain.RoleUser, IsActive: true}); err != nil {
		t.Fatal(err)
	}

	taken := "1710000002"
	if _, err := repo.Update(ctx, a.ID, UpdateUserParams{Mobile: &taken}); !errors.Is(err, ErrDuplicateMobile) {
		t.Errorf("got %v, want ErrDuplicateMobile", err)
	}

	// Keeping your own mobile is not a conflict.
	own := "1710000001"
	if _, err := repo.Update(ctx, a.ID, UpdateUserParams{Mobile: &own}); err != nil {
		t.Errorf("self mobile update: %v", err)
	}
}

func TestUpdateMergesPartialFields(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	u, err := repo.Create(ctx, CreateUserParams{Name: "Before", Mobile: "1710000001", Role: domain.RoleUser, IsActive: true})
	if err != nil {
		t.Fatal(err)
	}

	name := "After"
	inactive := false
	got, err := repo.Update(ctx, u.ID, UpdateUserParams{Name: &name, IsActive: &inactive})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "After" || got.IsActive {
		t.Errorf("updated user = %+v", got)
	}
	if got.Mobile != u.Mobile || got.Role != u.Role {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if !got.UpdatedAt.After(u.UpdatedAt) && !got.UpdatedAt.Equal(u.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards: %v -> %v", u.UpdatedAt, got.UpdatedAt)
	}
}

func TestApplyDueDelta(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	u, err := repo.Create(ctx, CreateUserParams{Name: "Bal", Mobile: "1710000001", Role: domain.RoleUser, IsActive: true})
	if err != nil {
		t.Fatal(err)
	}
	if !u.TotalDue.IsZero() {
		t.Fatalf("new account balance = %s, want 0", u.TotalDue)
	}

	if _, err := repo.ApplyDueDelta(ctx, u.ID, decimal.NewFromInt(300)); err != nil {
		t.Fatal(err)
	}
	got, err := repo.ApplyDueDelta(ctx, u.ID, decimal.NewFromInt(-120))
	if err != nil {
		t.Fatal(err)
	}
	if !got.TotalDue.Equal(decimal.NewFromInt(180)) {
		t.Errorf("balance = %s, want 180", got.TotalDue)
	}

	if _, err := repo.ApplyDueDelta(ctx, "missing", decimal.NewFromInt(1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestEnsureDefaultSuperadmin(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	seeded, err := repo.EnsureDefaultSuperadmin(ctx, "digest")
	if err != nil {
		t.Fatal(err)
	}
	if seeded == nil || seeded.Role != domain.RoleSuperadmin || seeded.Mobile != SeedSuperadminMobile {
		t.Fatalf("seeded = %+v", seeded)
	}

	again, err := repo.EnsureDefaultSuperadmin(ctx, "digest")
	if err != nil {
		t.Fatal(err)
	}
	if again != nil {
		t.Errorf("second seed created %+v, want nil", again)
	}
}
