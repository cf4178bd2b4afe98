package service

import (
	"errors"
	"testing"
	"time"

	"fleetledger-backend/internal/domain"
)

func TestTokenRoundtrip(t *testing.T) {
	svc := TokenService{Secret: []byte("test-secret"), TTL: time.Hour}
	identity := domain.AuthUser{
		ID:     "u-1",
		Name:   "Alice",
		Mobile: "1710000000",
		Role:   domain.RoleManager,
	}

	token, expiresAt, err := svc.Issue(identity)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute || remaining > time.Hour {
		t.Errorf("expiry %v not about an hour away", expiresAt)
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if *got != identity {
		t.Errorf("got %+v, want %+v", got, identity)
	}
}

func TestTokenExpired(t *testing.T) {
	svc := TokenService{Secret: []byte("test-secret"), TTL: -time.Minute}

	token, _, err := svc.Issue(domain.AuthUser{ID: "u-1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := TokenService{Secret: []byte("secret-a"), TTL: time.Hour}
	verifier := TokenService{Secret: []byte("secret-b"), TTL: time.Hour}

	token, _, err := issuer.Issue(domain.AuthUser{ID: "u-1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("forged token: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenTampered(t *testing.T) {
	svc := TokenService{Secret: []byte("test-secret"), TTL: time.Hour}

	token, _, err := svc.Issue(domain.AuthUser{ID: "u-1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	mangled := []byte(token)
	mangled[len(mangled)-1] ^= 0x01
	if _, err := svc.Verify(string(mangled)); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token: got %v, want ErrInvalidToken", err)
	}

	if _, err := svc.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: got %v, want ErrInvalidToken", err)
	}
}
