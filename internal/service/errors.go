package service

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotAuthenticated  = errors.New("not signed in")
	ErrSessionExpired    = errors.New("session expired, sign in again")
	ErrAccessDenied      = errors.New("access denied")
	ErrRecordNotFound    = errors.New("record not found")
	ErrRecordConflict    = errors.New("record conflicts with existing data")
	ErrRejectedByServer  = errors.New("rejected by server")
	ErrServerUnavailable = errors.New("server unavailable")
)
