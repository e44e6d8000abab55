package auth_test

import (
	"context"
	"testing"

	"github.com/simplesdental/go-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePasswordMessage_Validate(t *testing.T) {
	t.Run("accepts a valid payload", func(t *testing.T) {
		msg := auth.UpdatePasswordMessage{
			CurrentPassword:    "old-password",
			NewPassword:        "new-password",
			ConfirmNewPassword: "new-password",
		}
		assert.NoError(t, msg.Validate())
	})

	t.Run("requires the current password first", func(t *testing.T) {
		msg := auth.UpdatePasswordMessage{
			NewPassword:        "short",
			ConfirmNewPassword: "different",
		}
		err := msg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "current password is required")
	})

	t.Run("then checks the new password length", func(t *testing.T) {
		msg := auth.UpdatePasswordMessage{
			CurrentPassword:    "old-password",
			NewPassword:        "short",
			ConfirmNewPassword: "different",
		}
		err := msg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("then checks the confirmation", func(t *testing.T) {
		msg := auth.UpdatePasswordMessage{
			CurrentPassword:    "old-password",
			NewPassword:        "new-password",
			ConfirmNewPassword: "other-password",
		}
		err := msg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "confirmation does not match")
	})
}

type capturingInvalidator struct {
	identifiers []string
}

func (c *capturingInvalidator) Invalidate(ctx context.Context, identifier string) error {
	c.identifiers = append(c.identifiers, identifier)
	return nil
}

func TestUpdatePasswordHandler_Execute(t *testing.T) {
	background := context.Background()

	validMsg := auth.UpdatePasswordMessage{
		CurrentPassword:    "password123",
		NewPassword:        "new-password-456",
		ConfirmNewPassword: "new-password-456",
	}

	t.Run("requires an authenticated context", func(t *testing.T) {
		manager := setupRepoManager(t)
		handler := auth.NewUpdatePasswordHandler(manager, nil)

		err := handler.Execute(background, validMsg)

		assert.ErrorIs(t, err, auth.ErrNoAuthenticatedContext)
	})

	t.Run("rejects an unknown subject", func(t *testing.T) {
		manager := setupRepoManager(t)
		handler := auth.NewUpdatePasswordHandler(manager, nil)

		ctx := auth.WithSubjectContext(background, "ghost@example.com")

		err := handler.Execute(ctx, validMsg)

		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
	})

	t.Run("re-verifies the current password", func(t *testing.T) {
		manager := setupRepoManager(t)
		seedUser(t, manager.Users(), "user@example.com", "password123")
		handler := auth.NewUpdatePasswordHandler(manager, nil)

		ctx := auth.WithSubjectContext(background, "user@example.com")

		msg := validMsg
		msg.CurrentPassword = "wrong-password"

		err := handler.Execute(ctx, msg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "current password is incorrect")
	})

	t.Run("swaps the hash and moves the watermark", func(t *testing.T) {
		manager := setupRepoManager(t)
		seeded := seedUser(t, manager.Users(), "user@example.com", "password123")
		require.Nil(t, seeded.ValidSince)

		invalidator := &capturingInvalidator{}
		handler := auth.NewUpdatePasswordHandler(manager, invalidator)

		ctx := auth.WithSubjectContext(background, "user@example.com")

		err := handler.Execute(ctx, validMsg)
		require.NoError(t, err)

		updated, err := manager.Users().GetByEmail(background, "user@example.com")
		require.NoError(t, err)

		assert.NotEqual(t, seeded.PasswordHash, updated.PasswordHash)
		assert.Error(t, auth.ComparePasswordAndHash("password123", updated.PasswordHash))
		assert.NoError(t, auth.ComparePasswordAndHash("new-password-456", updated.PasswordHash))
		require.NotNil(t, updated.ValidSince)

		assert.Equal(t, []string{"user@example.com"}, invalidator.identifiers)
	})

	t.Run("does not change the hash on a validation failure", func(t *testing.T) {
		manager := setupRepoManager(t)
		seeded := seedUser(t, manager.Users(), "user@example.com", "password123")
		handler := auth.NewUpdatePasswordHandler(manager, nil)

		ctx := auth.WithSubjectContext(background, "user@example.com")

		msg := validMsg
		msg.ConfirmNewPassword = "something-else"

		err := handler.Execute(ctx, msg)
		require.Error(t, err)

		updated, err := manager.Users().GetByEmail(background, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, seeded.PasswordHash, updated.PasswordHash)
		assert.Nil(t, updated.ValidSince)
	})
}
