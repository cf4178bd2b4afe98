package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"fleetledger-backend/internal/config"
	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrValidation         = errors.New("invalid input")
)

// Mobile numbers are 10-11 digits without a leading zero.
var mobilePattern = regexp.MustCompile(`^[1-9]\d{9,10}$`)

type AuthService struct {
	Config config.Config
	Users  repository.UserRepository
	Tokens TokenService
	Audit  Auditor
	Logger *slog.Logger
}

type LoginInput struct {
	Mobile    string
	Password  string
	IPAddress string
	UserAgent string
}

type AuthResult struct {
	Token       string
	ExpiresAt   time.Time
	User        domain.User
	Permissions []Permission
}

type RegisterInput struct {
	Name        string
	Mobile      string
	Password    string
	Role        domain.UserRole
	Image       string
	NIDNo       string
	DateOfBirth string
	IsActive    *bool
}

// Login authenticates by mobile + secret and mints a bearer token. Lookup
// misses, inactive accounts and bad secrets all collapse into
// ErrInvalidCredentials.
func (s AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.Users.GetByMobile(ctx, in.Mobile)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !VerifyPassword(in.Password, user.Password, s.Config.LegacyDemoLogin) {
		return nil, ErrInvalidCredentials
	}

	identity := domain.AuthUser{ID: user.ID, Name: user.Name, Mobile: user.Mobile, Role: user.Role}
	token, expiresAt, err := s.Tokens.Issue(identity)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.Audit.Record(ctx, AuditEntry{
		Actor:     identity,
		Action:    domain.ActionLogin,
		Details:   "user logged in",
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	})

	return &AuthResult{
		Token:       token,
		ExpiresAt:   expiresAt,
		User:        *user,
		Permissions: Permissions(user.Role),
	}, nil
}

// VerifyToken recovers the identity embedded in a bearer token.
func (s AuthService) VerifyToken(token string) (*domain.AuthUser, error) {
	return s.Tokens.Verify(token)
}

// Register creates an account. The acting identity must hold MANAGE_USERS.
// When no secret is supplied the last six digits of the mobile number are
// used, matching how seeded accounts were provisioned.
func (s AuthService) Register(ctx context.Context, in RegisterInput, actor domain.AuthUser) (*domain.User, error) {
	if !HasPermission(actor.Role, PermManageUsers) {
		return nil, ErrPermissionDenied
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !mobilePattern.MatchString(in.Mobile) {
		return nil, fmt.Errorf("%w: mobile must be 10-11 digits without leading zero", ErrValidation)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if _, ok := map[domain.UserRole]bool{
		domain.RoleSuperadmin: true, domain.RoleManager: true, domain.RoleUser: true,
	}[role]; !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	password := in.Password
	if password == "" {
		password = in.Mobile[len(in.Mobile)-6:]
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	user, err := s.Users.Create(ctx, repository.CreateUserParams{
		Name:         in.Name,
		Mobile:       in.Mobile,
		PasswordHash: hash,
		Role:         role,
		Image:        in.Image,
		NIDNo:        in.NIDNo,
		DateOfBirth:  in.DateOfBirth,
		IsActive:     active,
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, AuditEntry{
		Actor:   actor,
		Action:  domain.ActionCreateUser,
		Details: fmt.Sprintf("created user: %s (%s)", user.Name, user.Mobile),
	})
	return user, nil
}

// ChangePassword verifies the current secret through the bcrypt path and
// stores a fresh digest. The legacy demo shortcut does not apply here.
func (s AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if !VerifyPassword(current, user.Password, false) {
		return ErrInvalidCredentials
	}
	if len(next) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	if _, err := s.Users.Update(ctx, userID, repository.UpdateUserParams{PasswordHash: &hash}); err != nil {
		return err
	}

	s.Audit.Record(ctx, AuditEntry{
		Actor:   domain.AuthUser{ID: user.ID, Name: user.Name, Mobile: user.Mobile, Role: user.Role},
		Action:  domain.ActionChangePassword,
		Details: "password changed",
	})
	return nil
}

// Logout only records an audit entry; the bearer token stays valid until it
// expires. Clients discard the credential.
func (s AuthService) Logout(ctx context.Context, actor domain.AuthUser, ip, userAgent string) {
	s.Audit.Record(ctx, AuditEntry{
		Actor:     actor,
		Action:    domain.ActionLogout,
		Details:   "user logged out",
		IPAddress: ip,
		UserAgent: userAgent,
	})
}
