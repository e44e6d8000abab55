package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// UserTracker is the slice of the credential store the identity provider needs.
type UserTracker interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	TrackAttemptedLogin(ctx context.Context, user *User) error
	TrackSuccessfulLogin(ctx context.Context, user *User) error
	InvalidateCredentials(ctx context.Context, email string) error
}

// UserProvider adapts the users store to the IdentityProvider interface.
type UserProvider struct {
	store  UserTracker
	logger Logger
}

// MaxLoginAttempts is the maximum number of attempts a user gets in a period
var MaxLoginAttempts = 5

// CoolDownPeriod is the period in which we enforce a cool down
var CoolDownPeriod = "24h"

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserTracker) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity will find the user, compare the password, and return the
// identity. A missing user and a wrong password fail identically so callers
// cannot probe which emails exist.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, WrapStoreUnavailable(err)
	}

	if user.LoginAttemptAt != nil {
		expired, err := IsOutsideThresholdPeriod(*user.LoginAttemptAt, CoolDownPeriod)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to calculate login attempt cooldown")
		}

		if expired {
			user.LoginAttempts = 0
		}
	}

	// if we have too many attempts in the given window, cool off!
	if user.LoginAttempts > MaxLoginAttempts {
		return nil, ErrTooManyLoginAttempts
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if err2 := u.store.TrackAttemptedLogin(ctx, user); err2 != nil {
			return nil, WrapStoreUnavailable(err2)
		}
		return nil, ErrMismatchedHashAndPassword
	}

	if err := u.store.TrackSuccessfulLogin(ctx, user); err != nil {
		u.logger.Error("failed to track successful login", "error", err)
	}

	return identityFromUser(user), nil
}

// FindIdentityByIdentifier resolves a subject to its current identity record.
func (u *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, WrapStoreUnavailable(err)
	}

	return identityFromUser(user), nil
}

// InvalidateCredentials moves the subject's revocation watermark.
func (u *UserProvider) InvalidateCredentials(ctx context.Context, identifier string) error {
	if err := u.store.InvalidateCredentials(ctx, identifier); err != nil {
		return WrapStoreUnavailable(err)
	}
	return nil
}

type authIdentity struct {
	id         string
	name       string
	email      string
	role       string
	validSince *time.Time
}

func identityFromUser(user *User) authIdentity {
	return authIdentity{
		id:         user.ID.String(),
		name:       user.Name,
		email:      user.Email,
		role:       string(user.Role),
		validSince: user.ValidSince,
	}
}

func (a authIdentity) ID() string    { return a.id }
func (a authIdentity) Name() string  { return a.name }
func (a authIdentity) Email() string { return a.email }
func (a authIdentity) Role() string  { return a.role }

func (a authIdentity) CredentialsValidSince() *time.Time {
	return a.validSince
}

var _ Identity = authIdentity{}
var _ IdentityProvider = (*UserProvider)(nil)
var _ CredentialInvalidator = (*UserProvider)(nil)
