package utils

import "github.com/google/uuid"

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// UUIDGenerator produces time-ordered request identifiers, so ids in the
// client log sort in the order the requests were sent.
type UUIDGenerator struct{}

// NewUUIDGenerator returns a ready generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to a random UUIDv4 when the clock
// source fails.
func (g *UUIDGenerator) Generate() string {
	if v7, err := uuid.NewV7(); err == nil {
		return v7.String()
	}
	return uuid.NewString()
}
