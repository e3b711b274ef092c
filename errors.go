package users

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeInvalidCreds identifies undifferentiated credential failures
	TextCodeInvalidCreds = "INVALID_CREDENTIALS"
	// TextCodeLoginNotFound identifies lookups for unknown logins
	TextCodeLoginNotFound = "LOGIN_NOT_FOUND"
	// TextCodeLoginTaken identifies login uniqueness conflicts
	TextCodeLoginTaken = "LOGIN_TAKEN"
	// TextCodeNotAuthorized identifies capability tier violations
	TextCodeNotAuthorized = "NOT_AUTHORIZED"
	// TextCodeEmptyPassword identifies empty password input
	TextCodeEmptyPassword = "EMPTY_PASSWORD"
	// TextCodeTokenExpired identifies expired session tokens
	TextCodeTokenExpired = "TOKEN_EXPIRED"
	// TextCodeTokenMalformed identifies undecodable or forged tokens
	TextCodeTokenMalformed = "TOKEN_MALFORMED"
	// TextCodeInvalidInput identifies validation failures
	TextCodeInvalidInput = "INVALID_INPUT"
)

// ErrInvalidCredentials is the single error for every authentication
// failure: unknown login, revoked account, or password mismatch. Keeping
// the cause undifferentiated prevents login enumeration.
var ErrInvalidCredentials = goerrors.New("the credentials provided are invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(goerrors.CodeUnauthorized)

// ErrLoginNotFound is returned when the target login does not exist
var ErrLoginNotFound = goerrors.New("login not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeLoginNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrLoginTaken is returned when a create or rename collides with an
// existing login, revoked accounts included.
var ErrLoginTaken = goerrors.New("login is already taken", goerrors.CategoryConflict).
	WithTextCode(TextCodeLoginTaken).
	WithCode(goerrors.CodeConflict)

// ErrNotAuthorized is returned when the actor lacks the capability tier
// required for the target.
var ErrNotAuthorized = goerrors.New("actor is not authorized for this operation", goerrors.CategoryAuthz).
	WithTextCode(TextCodeNotAuthorized).
	WithCode(goerrors.CodeForbidden)

// ErrNoEmptyString is returned when an empty password reaches the hasher
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(goerrors.CodeBadRequest)

// ErrTokenExpired is returned for tokens past their expiry claim
var ErrTokenExpired = goerrors.New("session token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that fail structural or
// signature validation.
var ErrTokenMalformed = goerrors.New("session token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// IsNotFound will check for not found errors
func IsNotFound(err error) bool {
	richErr, ok := asRichError(err)
	return ok && richErr.Category == goerrors.CategoryNotFound
}

// IsConflict will check for login uniqueness conflicts
func IsConflict(err error) bool {
	richErr, ok := asRichError(err)
	return ok && richErr.Category == goerrors.CategoryConflict
}

// IsNotAuthorized will check for capability tier violations
func IsNotAuthorized(err error) bool {
	richErr, ok := asRichError(err)
	return ok && richErr.Category == goerrors.CategoryAuthz
}

// IsAuthFailure will check for authentication failures
func IsAuthFailure(err error) bool {
	richErr, ok := asRichError(err)
	return ok && richErr.Category == goerrors.CategoryAuth
}

// IsValidation will check for input validation failures
func IsValidation(err error) bool {
	richErr, ok := asRichError(err)
	return ok && richErr.Category == goerrors.CategoryValidation
}

func asRichError(err error) (*goerrors.Error, bool) {
	if err == nil {
		return nil, false
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return nil, false
	}

	return richErr, true
}
