package service

import (
	"time"

	"fleetledger-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs and verifies the bearer tokens that carry a session
// identity. Tokens are pure bearer credentials: there is no revocation list,
// compromise is only bounded by TTL.
type TokenService struct {
	Secret []byte
	TTL    time.Duration
}

type identityClaims struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issue mints a signed token embedding id, mobile, role and name.
func (s TokenService) Issue(user domain.AuthUser) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.TTL)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, identityClaims{
		Name:   user.Name,
		Mobile: user.Mobile,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify checks signature and expiry and recovers the embedded identity.
// Every failure mode (forged, malformed, expired) collapses into
// ErrInvalidToken so callers can treat it uniformly as "no session".
func (s TokenService) Verify(tokenStr string) (*domain.AuthUser, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &identityClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*identityClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &domain.AuthUser{
		ID:     claims.Subject,
		Name:   claims.Name,
		Mobile: claims.Mobile,
		Role:   domain.UserRole(claims.Role),
	}, nil
}
