package auth_test

import (
	"context"
	"testing"

	"github.com/simplesdental/go-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectContext(t *testing.T) {
	t.Run("round trips the subject", func(t *testing.T) {
		ctx := auth.WithSubjectContext(context.Background(), "user@example.com")

		subject, ok := auth.SubjectFromContext(ctx)

		assert.True(t, ok)
		assert.Equal(t, "user@example.com", subject)
	})

	t.Run("empty context has no subject", func(t *testing.T) {
		subject, ok := auth.SubjectFromContext(context.Background())

		assert.False(t, ok)
		assert.Empty(t, subject)
	})

	t.Run("empty subject reports absent", func(t *testing.T) {
		ctx := auth.WithSubjectContext(context.Background(), "")

		_, ok := auth.SubjectFromContext(ctx)

		assert.False(t, ok)
	})
}

func TestUserContext(t *testing.T) {
	user := &auth.User{Email: "user@example.com"}

	ctx := auth.WithContext(context.Background(), user)

	resolved, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, user, resolved)

	_, ok = auth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestClaimsContext(t *testing.T) {
	claims := &auth.JWTClaims{UID: "user-123", UserRole: "admin"}

	ctx := auth.WithClaimsContext(context.Background(), claims)

	resolved, ok := auth.GetClaims(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-123", resolved.UserID())
	assert.Equal(t, "admin", resolved.Role())

	_, ok = auth.GetClaims(context.Background())
	assert.False(t, ok)
}
