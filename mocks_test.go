package auth_test

import (
	"context"
	"time"

	"github.com/simplesdental/go-auth"
	"github.com/stretchr/testify/mock"
)

// MockIdentityProvider implements auth.IdentityProvider and
// auth.CredentialInvalidator.
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Identity), args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Identity), args.Error(1)
}

func (m *MockIdentityProvider) InvalidateCredentials(ctx context.Context, identifier string) error {
	args := m.Called(ctx, identifier)
	return args.Error(0)
}

// MockUserTracker implements auth.UserTracker.
type MockUserTracker struct {
	mock.Mock
}

func (m *MockUserTracker) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockUserTracker) TrackAttemptedLogin(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserTracker) TrackSuccessfulLogin(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserTracker) InvalidateCredentials(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// TestIdentity is a plain value implementation of auth.Identity that can
// carry a revocation watermark.
type TestIdentity struct {
	id         string
	name       string
	email      string
	role       string
	validSince *time.Time
}

func (t TestIdentity) ID() string    { return t.id }
func (t TestIdentity) Name() string  { return t.name }
func (t TestIdentity) Email() string { return t.email }
func (t TestIdentity) Role() string  { return t.role }

func (t TestIdentity) CredentialsValidSince() *time.Time {
	return t.validSince
}

type mockConfig struct {
	signingKey      string
	signingMethod   string
	contextKey      string
	tokenExpiration int
	authScheme      string
	issuer          string
	audience        []string
}

func newMockConfig() *mockConfig {
	return &mockConfig{
		signingKey:      "test-signing-key",
		signingMethod:   "HS256",
		contextKey:      "user",
		tokenExpiration: 24,
		authScheme:      "Bearer",
		issuer:          "test-issuer",
		audience:        []string{"test-audience"},
	}
}

func (c *mockConfig) GetSigningKey() string    { return c.signingKey }
func (c *mockConfig) GetSigningMethod() string { return c.signingMethod }
func (c *mockConfig) GetContextKey() string    { return c.contextKey }
func (c *mockConfig) GetTokenExpiration() int  { return c.tokenExpiration }
func (c *mockConfig) GetAuthScheme() string    { return c.authScheme }
func (c *mockConfig) GetIssuer() string        { return c.issuer }
func (c *mockConfig) GetAudience() []string    { return c.audience }
