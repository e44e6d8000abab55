package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes attached to rich errors so transport layers and clients can key
// off stable identifiers instead of message strings.
const (
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeTokenInvalid       = "TOKEN_INVALID"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeEmailInUse         = "EMAIL_IN_USE"
	TextCodeNoAuthContext      = "NO_AUTH_CONTEXT"
	TextCodeStoreUnavailable   = "STORE_UNAVAILABLE"
	TextCodeTooManyAttempts    = "TOO_MANY_LOGIN_ATTEMPTS"
)

// ErrInvalidCredentials covers both an unknown identifier and a wrong
// password. The two cases are deliberately indistinguishable so login
// responses cannot be used to enumerate registered emails.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeInvalidCredentials)

// ErrTokenInvalid is the only token failure callers outside this package
// should act on: malformed, expired, bad signature, unresolvable subject,
// and stale tokens all collapse into it.
var ErrTokenInvalid = errors.New("invalid authentication token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenInvalid)

// ErrTokenExpired is the internal expiry failure, kept distinct for logging.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed is the internal structural failure, kept distinct for logging.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMalformed)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrNoAuthenticatedContext means an operation that requires an authenticated
// principal ran without one in the request context.
var ErrNoAuthenticatedContext = errors.New("no authenticated principal in context", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeNoAuthContext)

// ErrEmailInUse is returned by registration when the email is already taken,
// either by the pre-insert check or by the store's unique constraint.
var ErrEmailInUse = errors.New("email already in use", errors.CategoryConflict).
	WithTextCode(TextCodeEmailInUse)

// ErrTooManyLoginAttempts throttles credential verification while the
// cooldown window is active.
var ErrTooManyLoginAttempts = errors.New("too many login attempts", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTooManyAttempts)

// ErrMismatchedHashAndPassword is the single failure for password
// verification: wrong passwords and malformed stored hashes are not
// distinguishable by the caller.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty required values
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryValidation)

// WrapStoreUnavailable marks a credential store fault. Store faults always
// surface to callers; only the request filter absorbs them into
// "unauthenticated".
func WrapStoreUnavailable(err error) *errors.Error {
	return errors.Wrap(err, errors.CategoryInternal, "credential store unavailable").
		WithTextCode(TextCodeStoreUnavailable)
}

// IsStoreUnavailable reports whether err carries the store fault text code.
func IsStoreUnavailable(err error) bool {
	return hasTextCode(err, TextCodeStoreUnavailable)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return hasTextCode(err, TextCodeTokenExpired) ||
		strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return hasTextCode(err, TextCodeTokenMalformed) ||
		strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

func hasTextCode(err error, code string) bool {
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.TextCode == code
	}
	return false
}
