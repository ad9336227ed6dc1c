// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-clinic-client/internal/adapter"
	"github.com/MKhiriev/go-clinic-client/internal/validators"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. The original error stays in the chain so callers can still
// reach *adapter.APIError for the server's detail.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrBadRequest), errors.Is(err, adapter.ErrUnprocessable):
		return fmt.Errorf("%w: %w", ErrRejectedByServer, err)

	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)

	case errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)

	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrRecordNotFound, err)

	case errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", ErrRecordConflict, err)

	case errors.Is(err, adapter.ErrInternalServerError), errors.Is(err, adapter.ErrBadGateway):
		return fmt.Errorf("%w: %w", ErrServerUnavailable, err)
	}

	return err
}

// invalidInput wraps a validators error so it matches ErrInvalidInput.
func invalidInput(err error) error {
	if err == nil || errors.Is(err, validators.ErrUnsupportedType) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// ServerDetail returns the server's reason carried by err, if any.
func ServerDetail(err error) (string, bool) {
	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}
