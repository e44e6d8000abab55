package auth_test

import (
	"testing"

	"github.com/simplesdental/go-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", "super-secret")

		cfg, err := auth.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "super-secret", cfg.GetSigningKey())
		assert.Equal(t, "HS256", cfg.GetSigningMethod())
		assert.Equal(t, 24, cfg.GetTokenExpiration())
		assert.Equal(t, "user", cfg.GetContextKey())
		assert.Equal(t, "Bearer", cfg.GetAuthScheme())
		assert.Empty(t, cfg.GetIssuer())
	})

	t.Run("reads explicit values", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", "super-secret")
		t.Setenv("AUTH_TOKEN_EXPIRATION", "1")
		t.Setenv("AUTH_ISSUER", "api.example.com")
		t.Setenv("AUTH_AUDIENCE", "web,mobile")
		t.Setenv("AUTH_SCHEME", "Token")

		cfg, err := auth.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 1, cfg.GetTokenExpiration())
		assert.Equal(t, "api.example.com", cfg.GetIssuer())
		assert.Equal(t, []string{"web", "mobile"}, cfg.GetAudience())
		assert.Equal(t, "Token", cfg.GetAuthScheme())
	})

	t.Run("requires a signing key", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", "")

		_, err := auth.LoadConfig()

		assert.Error(t, err)
	})
}
