// Package workers provides abstractions for managing and running
// background workers in the client.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers in a unified way.
package workers

import (
	"context"

	"github.com/MKhiriev/go-clinic-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/workers_mock.go -package=mock

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns immediately; the worker keeps going in
// its own goroutine until ctx is cancelled or Stop is called. Stop blocks
// until the goroutine has exited.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// ProfileRefresher is the part of the session manager the refresh job uses.
type ProfileRefresher interface {
	State() models.AuthState
	RefreshProfile(ctx context.Context) (models.User, error)
}
