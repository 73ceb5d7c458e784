package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"gestor/internal/infra/persistence/memory"
	"gestor/pkg/domain"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(memory.NewStore(), Config{Secret: "test-secret", BcryptCost: 4})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresSecret(t *testing.T) {
	if _, err := NewService(memory.NewStore(), Config{}); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Lucas@Example.com", "Lucas", "super-secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "lucas@example.com" {
		t.Fatalf("email not normalized: %s", user.Email)
	}
	if user.PasswordHash == "super-secret" || user.PasswordHash == "" {
		t.Fatal("password stored without hashing")
	}

	token, err := svc.Login(ctx, "lucas@example.com", "super-secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token.TokenType != "bearer" || token.AccessToken == "" {
		t.Fatalf("unexpected token: %+v", token)
	}

	claims, err := svc.Verify(token.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "lucas@example.com" || claims.Name != "Lucas" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "dani@example.com", "Dani", "right-password"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, "dani@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := newTestService(t)
	svc.ttl = time.Minute
	ctx := context.Background()
	if _, err := svc.Register(ctx, "bruno@example.com", "Bruno", "long-enough"); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.Login(ctx, "bruno@example.com", "long-enough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Minute) }
	if _, err := svc.Verify(token.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(context.Background(), "no-at-sign", " ", "short")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "diego@example.com", "Diego", "long-enough"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "diego@example.com", "Diego", "long-enough"); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
