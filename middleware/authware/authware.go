// Package authware is the request authentication filter: it extracts a
// bearer token from the Authorization header, validates it, and records the
// outcome for downstream handlers. The filter never rejects a request
// itself; invalid or missing credentials degrade to an unauthenticated
// outcome and the next stage of the pipeline always runs exactly once.
package authware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Identity mirrors the auth package identity without an import cycle.
type Identity interface {
	ID() string
	Name() string
	Email() string
	Role() string
}

// ValidatorFunc runs the full token validation pipeline for a raw token.
type ValidatorFunc func(ctx context.Context, token string) (Identity, error)

// ContextEnricher propagates the authenticated identity into the standard
// request context so non-fiber layers can read it.
type ContextEnricher func(ctx context.Context, identity Identity) context.Context

// Outcome is the filter result. Every code path through the filter
// constructs exactly one of the two variants: Authenticated or
// Unauthenticated. There is no error variant on purpose.
type Outcome struct {
	identity Identity
}

// Authenticated wraps a resolved identity.
func Authenticated(identity Identity) Outcome {
	return Outcome{identity: identity}
}

// Unauthenticated is the outcome for absent, malformed, or rejected credentials.
func Unauthenticated() Outcome {
	return Outcome{}
}

// IsAuthenticated reports whether the filter resolved an identity.
func (o Outcome) IsAuthenticated() bool {
	return o.identity != nil
}

// Identity returns the resolved identity when the outcome is authenticated.
func (o Outcome) Identity() (Identity, bool) {
	return o.identity, o.identity != nil
}

type Config struct {
	// Filter skips the middleware entirely when it returns true.
	Filter func(*fiber.Ctx) bool
	// Validate is required: it decides whether the extracted token
	// authenticates a subject.
	Validate ValidatorFunc
	// ContextKey is the fiber locals key the Outcome is stored under.
	ContextKey string
	// AuthScheme is the expected Authorization scheme, "Bearer" by default.
	AuthScheme string
	// ContextEnricher, when set, runs only for authenticated outcomes.
	ContextEnricher ContextEnricher
}

// New builds the filter. The returned handler stores an Outcome under
// cfg.ContextKey and calls the next handler exactly once on every path.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		outcome := resolve(c, cfg)
		c.Locals(cfg.ContextKey, outcome)

		if identity, ok := outcome.Identity(); ok && cfg.ContextEnricher != nil {
			c.SetUserContext(cfg.ContextEnricher(c.UserContext(), identity))
		}

		return c.Next()
	}
}

// resolve maps every extraction/validation path to an Outcome. Validation
// errors are absorbed here: the downstream authorization check, not the
// filter, decides whether an unauthenticated request is acceptable.
func resolve(c *fiber.Ctx, cfg Config) Outcome {
	raw, ok := TokenFromHeader(c.Get(fiber.HeaderAuthorization), cfg.AuthScheme)
	if !ok {
		return Unauthenticated()
	}

	identity, err := cfg.Validate(c.UserContext(), raw)
	if err != nil || identity == nil {
		return Unauthenticated()
	}

	return Authenticated(identity)
}

// TokenFromHeader extracts the raw token from an Authorization header value.
// A missing header, a different scheme, or an empty token all report false.
func TokenFromHeader(header, scheme string) (string, bool) {
	if header == "" {
		return "", false
	}

	prefix := scheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// OutcomeFromLocals reads the filter outcome for the current request.
// Requests that never went through the filter are unauthenticated.
func OutcomeFromLocals(c *fiber.Ctx, key string) Outcome {
	if key == "" {
		key = defaultContextKey
	}
	outcome, ok := c.Locals(key).(Outcome)
	if !ok {
		return Unauthenticated()
	}
	return outcome
}

const defaultContextKey = "auth_outcome"

func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Validate == nil {
		panic("AUTH: filter configuration: Validate is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = defaultContextKey
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}
