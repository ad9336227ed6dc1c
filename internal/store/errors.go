package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by key-value store implementations. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by Get when nothing is stored under the key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCorruptedValue is returned when a stored value exists but cannot be
	// decoded (unsealing or JSON decoding failed).
	ErrCorruptedValue = errors.New("stored value is corrupted")
)

// Low-level operation errors. These are wrapped by backend methods when the
// underlying SQL or Redis call fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrRedisCommand is returned when a Redis command fails.
	ErrRedisCommand = errors.New("redis command failed")
)

// StorageError describes a failed read or write of a session key.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
