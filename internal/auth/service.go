// Package auth implements credential verification and bearer-token issuance
// for the portal. The original system shipped a placeholder login that
// accepted any non-empty pair; this replaces it with bcrypt password hashes
// and signed, expiring JWTs.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"gestor/pkg/domain"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike, so the response does not reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned when a bearer token fails signature or expiry
// checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// MinPasswordLength matches the registration form's minimum.
const MinPasswordLength = 8

// Token is the login response body.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Claims are the portal's JWT claims.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Config holds token issuance parameters.
type Config struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

// Service verifies credentials against the user table and issues JWTs.
type Service struct {
	store  domain.Store
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

// NewService constructs the auth service. The signing secret is mandatory.
func NewService(store domain.Store, cfg Config) (*Service, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("auth: signing secret must be configured")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		store:  store,
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		cost:   cost,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Login verifies the email/password pair and returns a signed bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Token{}, ErrInvalidCredentials
	}
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return Token{}, ErrInvalidCredentials
		}
		return Token{}, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Token{}, ErrInvalidCredentials
	}
	now := s.now()
	claims := Claims{
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{AccessToken: signed, TokenType: "bearer"}, nil
}

// Verify parses and validates a bearer token, returning its claims.
func (s *Service) Verify(tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// Register creates a portal account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, name, password string) (domain.User, error) {
	var fields []domain.FieldError
	if !strings.Contains(email, "@") {
		fields = append(fields, domain.FieldError{Field: "email", Reason: "must be a valid address"})
	}
	if strings.TrimSpace(name) == "" {
		fields = append(fields, domain.FieldError{Field: "name", Reason: "required"})
	}
	if len(password) < MinPasswordLength {
		fields = append(fields, domain.FieldError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength)})
	}
	if len(fields) > 0 {
		return domain.User{}, domain.ValidationError{Fields: fields}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.store.CreateUser(ctx, domain.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	})
}
