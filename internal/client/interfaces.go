// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-clinic-client/internal/cli"
	"github.com/MKhiriev/go-clinic-client/models"
)

// Client defines the lifecycle contract of a runnable client: a cli.Runtime
// that must be started before its services are used.
type Client interface {
	cli.Runtime

	// Start restores the stored session and launches background work.
	Start(ctx context.Context) models.AuthState
}

var _ Client = (*App)(nil)
