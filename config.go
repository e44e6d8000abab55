package auth

import (
	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// EnvConfig is the environment-backed Config implementation. The signing
// secret is read once at process start and kept in memory; nothing in this
// package prints or serializes it.
type EnvConfig struct {
	SigningKey      string   `env:"AUTH_SIGNING_KEY"`
	SigningMethod   string   `env:"AUTH_SIGNING_METHOD" envDefault:"HS256"`
	TokenExpiration int      `env:"AUTH_TOKEN_EXPIRATION" envDefault:"24"`
	Issuer          string   `env:"AUTH_ISSUER"`
	Audience        []string `env:"AUTH_AUDIENCE" envSeparator:","`
	ContextKey      string   `env:"AUTH_CONTEXT_KEY" envDefault:"user"`
	AuthScheme      string   `env:"AUTH_SCHEME" envDefault:"Bearer"`
}

// LoadConfig reads auth options from the environment.
func LoadConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse auth environment")
	}

	if cfg.SigningKey == "" {
		return nil, errors.New("AUTH_SIGNING_KEY is required", errors.CategoryBadInput)
	}

	return cfg, nil
}

func (c *EnvConfig) GetSigningKey() string    { return c.SigningKey }
func (c *EnvConfig) GetSigningMethod() string { return c.SigningMethod }
func (c *EnvConfig) GetContextKey() string    { return c.ContextKey }
func (c *EnvConfig) GetTokenExpiration() int  { return c.TokenExpiration }
func (c *EnvConfig) GetAuthScheme() string    { return c.AuthScheme }
func (c *EnvConfig) GetIssuer() string        { return c.Issuer }
func (c *EnvConfig) GetAudience() []string    { return c.Audience }

var _ Config = (*EnvConfig)(nil)
