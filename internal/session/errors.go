package session

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-clinic-client/internal/adapter"
)

var (
	// ErrAuthFailed is matched by every *AuthError.
	ErrAuthFailed = errors.New("authentication failed")
	// ErrSessionChanged is returned when the session moved on while an
	// operation was in flight; its result has been discarded.
	ErrSessionChanged = errors.New("session changed during operation")
	// ErrNotAuthenticated is returned by operations that need a token.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Operation names carried by AuthError.Op.
const (
	OpLogin          = "login"
	OpRegister       = "register"
	OpUpdateProfile  = "update profile"
	OpChangePassword = "change password"
	OpRefreshProfile = "refresh profile"
)

var genericReasons = map[string]string{
	OpLogin:          "could not sign in",
	OpRegister:       "could not create the account",
	OpUpdateProfile:  "could not update the profile",
	OpChangePassword: "could not change the password",
	OpRefreshProfile: "could not load the profile",
}

// AuthError is a rejected or failed authentication operation. Reason is the
// server's explanation when it sent one, otherwise a generic message for Op.
type AuthError struct {
	Op     string
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is makes every AuthError match ErrAuthFailed.
func (e *AuthError) Is(target error) bool {
	return target == ErrAuthFailed
}

func newAuthError(op string, err error) *AuthError {
	reason := genericReasons[op]

	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		reason = apiErr.Detail
	}

	return &AuthError{Op: op, Reason: reason, Err: err}
}
