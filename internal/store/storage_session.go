package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-clinic-client/internal/logger"
	"github.com/MKhiriev/go-clinic-client/models"
)

// Keys under which the session is persisted.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// SessionStorage maps the session onto two keys of a [KeyValueStore]: the
// raw token and the JSON-encoded user. It is the only writer of those keys.
type SessionStorage struct {
	kv     KeyValueStore
	logger *logger.Logger
}

func NewSessionStorage(kv KeyValueStore, logger *logger.Logger) *SessionStorage {
	return &SessionStorage{kv: kv, logger: logger}
}

// Load reads the persisted pair. Every failure is a *StorageError; a missing
// key matches ErrKeyNotFound and an undecodable user matches
// ErrCorruptedValue.
func (s *SessionStorage) Load(ctx context.Context) (string, *models.User, error) {
	token, err := s.kv.Get(ctx, TokenKey)
	if err == nil && token == "" {
		err = ErrKeyNotFound
	}
	if err != nil {
		return "", nil, &StorageError{Op: "get", Key: TokenKey, Err: err}
	}

	raw, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		return "", nil, &StorageError{Op: "get", Key: UserKey, Err: err}
	}

	var user models.User
	if err = json.Unmarshal([]byte(raw), &user); err != nil {
		return "", nil, &StorageError{Op: "get", Key: UserKey, Err: fmt.Errorf("%w: %w", ErrCorruptedValue, err)}
	}

	return token, &user, nil
}

// Save writes the token and then the user. If the user cannot be written the
// token is removed again so a token is never left without its user.
func (s *SessionStorage) Save(ctx context.Context, token string, user models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return &StorageError{Op: "set", Key: UserKey, Err: err}
	}

	if err = s.kv.Set(ctx, TokenKey, token); err != nil {
		return &StorageError{Op: "set", Key: TokenKey, Err: err}
	}

	if err = s.kv.Set(ctx, UserKey, string(payload)); err != nil {
		if rmErr := s.kv.Remove(ctx, TokenKey); rmErr != nil {
			s.logger.Err(rmErr).
				Str("func", "SessionStorage.Save").
				Msg("failed to roll back token after user write failure")
		}
		return &StorageError{Op: "set", Key: UserKey, Err: err}
	}

	return nil
}

// SaveUser replaces the persisted user, leaving the token untouched.
func (s *SessionStorage) SaveUser(ctx context.Context, user models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return &StorageError{Op: "set", Key: UserKey, Err: err}
	}

	if err = s.kv.Set(ctx, UserKey, string(payload)); err != nil {
		return &StorageError{Op: "set", Key: UserKey, Err: err}
	}
	return nil
}

// Clear removes both keys. Both removals are always attempted.
func (s *SessionStorage) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{TokenKey, UserKey} {
		if err := s.kv.Remove(ctx, key); err != nil {
			errs = append(errs, &StorageError{Op: "remove", Key: key, Err: err})
		}
	}
	return errors.Join(errs...)
}
