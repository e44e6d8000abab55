package auth

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// TokenInvalidator is the slice of the authentication service the password
// update flow needs once the new credentials are persisted.
type TokenInvalidator interface {
	Invalidate(ctx context.Context, identifier string) error
}

type UpdatePasswordMessage struct {
	CurrentPassword    string `json:"current_password"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

func (e UpdatePasswordMessage) Type() string { return "user.update_password" }

// Validate applies the field-level rules in order; the first failing
// condition determines the reported error. Re-verification of the current
// password happens in the handler, after these checks.
func (e UpdatePasswordMessage) Validate() error {
	if err := validation.Validate(e.CurrentPassword, validation.Required); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "current password is required")
	}

	if err := validation.Validate(e.NewPassword, validation.Required, validation.Length(8, 100)); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "new password must have at least 8 characters")
	}

	if e.NewPassword != e.ConfirmNewPassword {
		return goerrors.New("password confirmation does not match", goerrors.CategoryValidation)
	}

	return nil
}

// UpdatePasswordHandler changes the password of the principal identified by
// the request context. Self-service only: the subject always comes from the
// authenticated context, never from the payload.
type UpdatePasswordHandler struct {
	repo        RepositoryManager
	invalidator TokenInvalidator
	logger      Logger
}

func NewUpdatePasswordHandler(repo RepositoryManager, invalidator TokenInvalidator) *UpdatePasswordHandler {
	return &UpdatePasswordHandler{
		repo:        repo,
		invalidator: invalidator,
		logger:      defLogger{},
	}
}

func (h *UpdatePasswordHandler) WithLogger(l Logger) *UpdatePasswordHandler {
	h.logger = l
	return h
}

func (h *UpdatePasswordHandler) Execute(ctx context.Context, event UpdatePasswordMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password update",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *UpdatePasswordHandler) execute(ctx context.Context, event UpdatePasswordMessage) error {
	subject, ok := SubjectFromContext(ctx)
	if !ok {
		return ErrNoAuthenticatedContext
	}

	if err := event.Validate(); err != nil {
		return err
	}

	user, err := h.repo.Users().GetByEmail(ctx, subject)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return ErrIdentityNotFound
		}
		return WrapStoreUnavailable(err)
	}

	if err := ComparePasswordAndHash(event.CurrentPassword, user.PasswordHash); err != nil {
		return goerrors.New("current password is incorrect", goerrors.CategoryValidation)
	}

	hash, err := HashPassword(event.NewPassword)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err = h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return h.repo.Users().ResetPasswordTx(ctx, tx, user.ID, hash)
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "password update transaction failed")
	}

	// The UPDATE above already moved the revocation watermark together with
	// the hash; the explicit signal keeps external validators in sync and is
	// non-fatal if it fails.
	if h.invalidator != nil {
		if err := h.invalidator.Invalidate(ctx, subject); err != nil {
			h.logger.Warn("failed to signal credential invalidation", "error", err)
		}
	}

	return nil
}
