package session

import (
	"context"

	"github.com/MKhiriev/go-clinic-client/internal/adapter"
	"github.com/MKhiriev/go-clinic-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// AuthAPI is the part of the server adapter the Manager talks to.
type AuthAPI interface {
	adapter.AuthAdapter
	adapter.Interceptor
}

// SessionStore is the durable copy of the session. *store.SessionStorage
// implements it.
type SessionStore interface {
	// Load returns the persisted pair. Errors matching store.ErrKeyNotFound
	// or store.ErrCorruptedValue mean the pair is unusable.
	Load(ctx context.Context) (string, *models.User, error)
	Save(ctx context.Context, token string, user models.User) error
	SaveUser(ctx context.Context, user models.User) error
	Clear(ctx context.Context) error
}
