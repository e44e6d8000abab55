package auth

import (
	"context"
	"reflect"
	"time"
)

// Auther is the authentication service: it orchestrates credential
// verification, token issuance, full token validation, and credential
// invalidation. It holds the signing secret for the process lifetime and
// never logs it.
type Auther struct {
	provider        IdentityProvider
	signingKey      []byte
	tokenExpiration int
	issuer          string
	audience        []string
	logger          Logger
	tokenService    TokenService
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:        provider,
		signingKey:      []byte(opts.GetSigningKey()),
		tokenExpiration: opts.GetTokenExpiration(),
		audience:        opts.GetAudience(),
		issuer:          opts.GetIssuer(),
		logger:          defLogger{},
		tokenService:    tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	s.tokenService = NewTokenService(
		s.signingKey,
		s.tokenExpiration,
		s.issuer,
		s.audience,
		logger,
	)
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the identifier/password pair and mints a token for the
// subject. Unknown identifiers and wrong passwords produce the identical
// ErrInvalidCredentials; only store faults surface as themselves.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		if IsStoreUnavailable(err) {
			s.logger.Error("Login store error", "error", err)
			return "", err
		}
		s.logger.Info("Login rejected", "identifier", identifier)
		return "", ErrInvalidCredentials
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Login token generation failed", "error", err)
		return "", err
	}

	return token, nil
}

// Validate runs the full validation pipeline for a raw token:
// parsed → signature verified → subject resolved → not stale. Any failing
// step short-circuits to ErrTokenInvalid; the reason is logged, never
// returned. Store faults surface as themselves so the caller can tell
// infrastructure problems from rejections.
func (s *Auther) Validate(ctx context.Context, raw string) (Identity, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Info("Validate token rejected", "expired", IsTokenExpiredError(err))
		return nil, ErrTokenInvalid
	}

	identity, err := s.provider.FindIdentityByIdentifier(ctx, claims.Subject())
	if err != nil {
		if IsStoreUnavailable(err) {
			return nil, err
		}
		s.logger.Info("Validate subject no longer resolves", "subject", claims.Subject())
		return nil, ErrTokenInvalid
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		return nil, ErrTokenInvalid
	}

	if stale(claims, identity) {
		s.logger.Info("Validate token predates credential change", "subject", claims.Subject())
		return nil, ErrTokenInvalid
	}

	return identity, nil
}

// ExtractSubject decodes the subject claim without verifying the token.
// Logging and diagnostics only; authorization goes through Validate.
func (s *Auther) ExtractSubject(raw string) (string, error) {
	claims, err := ExtractUnverified(raw)
	if err != nil {
		return "", err
	}
	return claims.Subject(), nil
}

// Invalidate moves the subject's revocation watermark so tokens issued
// before now stop authenticating. Providers without invalidation support
// make this a no-op hook.
func (s *Auther) Invalidate(ctx context.Context, identifier string) error {
	invalidator, ok := s.provider.(CredentialInvalidator)
	if !ok {
		return nil
	}
	return invalidator.InvalidateCredentials(ctx, identifier)
}

type credentialAwareIdentity interface {
	CredentialsValidSince() *time.Time
}

// stale reports whether the token was issued before the subject's revocation
// watermark. JWT iat has second precision, so the watermark is truncated to
// the second: a token minted in the same second as a credential change still
// authenticates.
func stale(claims AuthClaims, identity Identity) bool {
	aware, ok := identity.(credentialAwareIdentity)
	if !ok {
		return false
	}

	validSince := aware.CredentialsValidSince()
	if validSince == nil {
		return false
	}

	issuedAt := claims.IssuedAt()
	if issuedAt.IsZero() {
		return true
	}

	return issuedAt.Before(validSince.Truncate(time.Second))
}

var _ Authenticator = (*Auther)(nil)
