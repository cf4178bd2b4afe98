package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = store.ErrNotFound

// ErrDuplicateMobile is returned when a mobile number is already registered.
var ErrDuplicateMobile = errors.New("mobile number already registered")

// Column order is the wire format of the Users sheet; never reorder.
var usersCollection = store.Collection[domain.User]{
	Sheet: "Users",
	Header: []string{
		"ID", "Name", "Mobile", "Password", "Role", "Image",
		"NID No", "Date of Birth", "Total Due", "Is Active",
		"Created At", "Updated At",
	},
	Encode: func(u domain.User) []string {
		return []string{
			u.ID,
			u.Name,
			u.Mobile,
			u.Password,
			string(u.Role),
			u.Image,
			u.NIDNo,
			u.DateOfBirth,
			u.TotalDue.String(),
			store.EncodeBool(u.IsActive),
			store.EncodeTime(u.CreatedAt),
			store.EncodeTime(u.UpdatedAt),
		}
	},
	Decode: func(row []string) domain.User {
		role := domain.UserRole(row[4])
		if role == "" {
			role = domain.RoleUser
		}
		return domain.User{
			ID:          row[0],
			Name:        row[1],
			Mobile:      row[2],
			Password:    row[3],
			Role:        role,
			Image:       row[5],
			NIDNo:       row[6],
			DateOfBirth: row[7],
			TotalDue:    store.DecodeDecimal(row[8]),
			IsActive:    store.DecodeBool(row[9]),
			CreatedAt:   store.DecodeTime(row[10]),
			UpdatedAt:   store.DecodeTime(row[11]),
		}
	},
}

type UserRepository struct {
	Store *store.Store
}

type CreateUserParams struct {
	Name         string
	Mobile       string
	PasswordHash string
	Role         domain.UserRole
	Image        string
	NIDNo        string
	DateOfBirth  string
	IsActive     bool
}

type UpdateUserParams struct {
	Name         *string
	Mobile       *string
	Role         *domain.UserRole
	Image        *string
	NIDNo        *string
	DateOfBirth  *string
	IsActive     *bool
	PasswordHash *string
}

// Create appends a new account after pre-checking mobile uniqueness by scan;
// the store itself enforces nothing.
func (r UserRepository) Create(ctx context.Context, p CreateUserParams) (*domain.User, error) {
	if _, err := r.GetByMobile(ctx, p.Mobile); err == nil {
		return nil, ErrDuplicateMobile
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:          uuid.NewString(),
		Name:        p.Name,
		Mobile:      p.Mobile,
		Password:    p.PasswordHash,
		Role:        p.Role,
		Image:       p.Image,
		NIDNo:       p.NIDNo,
		DateOfBirth: p.DateOfBirth,
		TotalDue:    decimal.Zero,
		IsActive:    p.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := store.Insert(ctx, r.Store, usersCollection, u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := store.Get(ctx, r.Store, usersCollection, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r UserRepository) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	u, err := store.Find(ctx, r.Store, usersCollection, func(u domain.User) bool {
		return u.Mobile == mobile
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return store.List(ctx, r.Store, usersCollection)
}

// Update merges partial fields onto the current row and rewrites it in place.
// TotalDue is deliberately absent from UpdateUserParams; the balance only
// moves through ApplyDueDelta.
func (r UserRepository) Update(ctx context.Context, id string, p UpdateUserParams) (*domain.User, error) {
	if p.Mobile != nil {
		existing, err := r.GetByMobile(ctx, *p.Mobile)
		if err == nil && existing.ID != id {
			return nil, ErrDuplicateMobile
		} else if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	u, err := store.Mutate(ctx, r.Store, usersCollection, id, func(u domain.User) domain.User {
		if p.Name != nil {
			u.Name = *p.Name
		}
		if p.Mobile != nil {
			u.Mobile = *p.Mobile
		}
		if p.Role != nil {
			u.Role = *p.Role
		}
		if p.Image != nil {
			u.Image = *p.Image
		}
		if p.NIDNo != nil {
			u.NIDNo = *p.NIDNo
		}
		if p.DateOfBirth != nil {
			u.DateOfBirth = *p.DateOfBirth
		}
		if p.IsActive != nil {
			u.IsActive = *p.IsActive
		}
		if p.PasswordHash != nil {
			u.Password = *p.PasswordHash
		}
		u.UpdatedAt = time.Now().UTC()
		return u
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ApplyDueDelta adjusts the running due balance by delta. This is the only
// mutation path allowed to touch TotalDue.
func (r UserRepository) ApplyDueDelta(ctx context.Context, id string, delta decimal.Decimal) (*domain.User, error) {
	u, err := store.Mutate(ctx, r.Store, usersCollection, id, func(u domain.User) domain.User {
		u.TotalDue = u.TotalDue.Add(delta)
		u.UpdatedAt = time.Now().UTC()
		return u
	})
	if err != nil {
		return nil, fmt.Errorf("apply due delta: %w", err)
	}
	return &u, nil
}

// Delete removes the account row permanently; this is not undo-able.
func (r UserRepository) Delete(ctx context.Context, id string) error {
	return store.Delete(ctx, r.Store, usersCollection, id)
}
