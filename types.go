package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the public attributes of an authenticated principal.
// Password material never travels through this interface.
type Identity interface {
	ID() string
	Name() string
	Email() string
	Role() string
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	// Login verifies credentials and mints a signed token for the subject.
	Login(ctx context.Context, identifier, password string) (string, error)
	// Validate runs the full pipeline: parse, verify signature and expiry,
	// resolve the subject against the store, reject stale tokens.
	Validate(ctx context.Context, token string) (Identity, error)
	// ExtractSubject decodes the subject claim without verifying the token.
	// Diagnostics only, never an authorization input.
	ExtractSubject(token string) (string, error)
	// Invalidate marks every token issued before now for the subject as stale.
	Invalidate(ctx context.Context, identifier string) error
}

// IdentityProvider ensure we have a store to retrieve auth identity
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
	FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error)
}

// CredentialInvalidator is implemented by identity providers whose backing
// store can move the per-subject revocation watermark.
type CredentialInvalidator interface {
	InvalidateCredentials(ctx context.Context, identifier string) error
}

// TokenService mints and validates signed tokens.
type TokenService interface {
	Generate(identity Identity) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetContextKey() string
	GetTokenExpiration() int
	GetAuthScheme() string
	GetIssuer() string
	GetAudience() []string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
