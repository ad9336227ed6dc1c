package adapter

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by [*APIError] through errors.Is.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	// Detail is the server's human readable reason, or the status text when
	// the body carried none.
	Detail string

	sentinel error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}

// NewAPIError builds an APIError for status with the matching sentinel.
func NewAPIError(status int, detail string) *APIError {
	return &APIError{StatusCode: status, Detail: detail, sentinel: sentinelFor(status)}
}

// ErrEmptyToken is returned by Login when a 2xx response carries no token.
var ErrEmptyToken = errors.New("empty access token")
