package repository

import (
	"context"

	"fleetledger-backend/internal/domain"
)

// Default superadmin seeded into an empty Users sheet. The password hash is
// supplied by the caller; the cleartext is 123456 for demo deployments.
const (
	SeedSuperadminName   = "Super Admin"
	SeedSuperadminMobile = "1234567890"
)

// EnsureDefaultSuperadmin creates the default superadmin when no accounts
// exist yet. It returns the created account, or nil when seeding was not
// needed.
func (r UserRepository) EnsureDefaultSuperadmin(ctx context.Context, passwordHash string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) > 0 {
		return nil, nil
	}
	return r.Create(ctx, CreateUserParams{
		Name:         SeedSuperadminName,
		Mobile:       SeedSuperadminMobile,
		PasswordHash: passwordHash,
		Role:         domain.RoleSuperadmin,
		IsActive:     true,
	})
}
