package authctx

import (
	"context"

	"fleetledger-backend/internal/domain"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity stores the verified token identity on the request context.
func WithIdentity(ctx context.Context, identity domain.AuthUser) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// FromContext returns the verified identity, or nil when the request carried
// no valid session.
func FromContext(ctx context.Context) *domain.AuthUser {
	val, ok := ctx.Value(identityContextKey).(domain.AuthUser)
	if !ok {
		return nil
	}
	return &val
}
