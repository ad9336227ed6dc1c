package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-clinic-client/internal/crypto"
)

// sealedKeyValueStore encrypts values before they reach the wrapped store.
// Keys stay in clear text.
type sealedKeyValueStore struct {
	inner  KeyValueStore
	sealer crypto.Sealer
}

// NewSealedKeyValueStore decorates inner so every value is sealed at rest.
// A value that cannot be unsealed is reported as ErrCorruptedValue.
func NewSealedKeyValueStore(inner KeyValueStore, sealer crypto.Sealer) KeyValueStore {
	return &sealedKeyValueStore{inner: inner, sealer: sealer}
}

func (s *sealedKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	plaintext, err := s.sealer.Open(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCorruptedValue, err)
	}
	return string(plaintext), nil
}

func (s *sealedKeyValueStore) Set(ctx context.Context, key, value string) error {
	sealed, err := s.sealer.Seal([]byte(value))
	if err != nil {
		return fmt.Errorf("seal value: %w", err)
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *sealedKeyValueStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}
