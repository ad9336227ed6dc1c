// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the trivial field checks the client runs before
// sending records or account data to the clinic API: required names, email
// and phone shape, calendar dates, patient ids and password length.
//
// Anything beyond these checks is the server's job; its answer comes back
// through the adapter as an APIError.
package validators

import "context"

// Validator checks a models value. Passing field names restricts the check
// to those fields; an unknown name yields ErrUnknownField.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
