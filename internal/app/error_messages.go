// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer messages shown to the user
// by the command line client.
//
// All Msg* constants are human-readable strings printed in place of raw
// errors. Keeping them in one place ensures consistent wording across
// commands. MessageFor picks the message for an error returned by the
// service or session layer.
package app

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-clinic-client/internal/service"
	"github.com/MKhiriev/go-clinic-client/internal/session"
)

const (
	// MsgNotSignedIn is shown when a command needs a session and there is
	// none.
	MsgNotSignedIn = "you are not signed in, run 'clinic auth login' first"

	// MsgSessionExpired is shown when the server rejected the current token;
	// the local session has already been cleared.
	MsgSessionExpired = "your session has expired, sign in again"

	// MsgSessionChanged is shown when another operation signed in or out
	// while the command was running.
	MsgSessionChanged = "the session changed while the command was running, try again"

	// MsgInvalidInput prefixes local validation failures.
	MsgInvalidInput = "invalid input"

	// MsgAccessDenied is shown for 403 responses.
	MsgAccessDenied = "you do not have access to this record"

	// MsgRecordNotFound is shown for 404 responses.
	MsgRecordNotFound = "record not found"

	// MsgRecordConflict is shown for 409 responses.
	MsgRecordConflict = "the record conflicts with existing data"

	// MsgServerUnavailable is shown for 5xx responses.
	MsgServerUnavailable = "the server is unavailable, try again later"

	// MsgCancelled is shown when the user interrupted the command.
	MsgCancelled = "operation cancelled"
)

// MessageFor returns the message to print for err. The server's own reason
// is preferred when the response carried one.
func MessageFor(err error) string {
	if err == nil {
		return ""
	}

	var authErr *session.AuthError
	if errors.As(err, &authErr) {
		return authErr.Reason
	}

	detail, hasDetail := service.ServerDetail(err)
	withDetail := func(msg string) string {
		if hasDetail {
			return msg + ": " + detail
		}
		return msg
	}

	switch {
	case errors.Is(err, context.Canceled):
		return MsgCancelled
	case errors.Is(err, service.ErrNotAuthenticated), errors.Is(err, session.ErrNotAuthenticated):
		return MsgNotSignedIn
	case errors.Is(err, service.ErrSessionExpired):
		return MsgSessionExpired
	case errors.Is(err, session.ErrSessionChanged):
		return MsgSessionChanged
	case errors.Is(err, service.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, service.ErrAccessDenied):
		return MsgAccessDenied
	case errors.Is(err, service.ErrRecordNotFound):
		return withDetail(MsgRecordNotFound)
	case errors.Is(err, service.ErrRecordConflict):
		return withDetail(MsgRecordConflict)
	case errors.Is(err, service.ErrRejectedByServer):
		if hasDetail {
			return detail
		}
		return err.Error()
	case errors.Is(err, service.ErrServerUnavailable):
		return MsgServerUnavailable
	}

	return err.Error()
}
