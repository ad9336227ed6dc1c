// Package utils provides general-purpose helper utilities
// used across different parts of the client.
// Includes tools for working with context, type-safe keys, the HTTP client
// wrapper, bearer token inspection and request identifiers.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// BearerTokenCtxKey is the key used to override the bearer token attached to
// an outbound request. Use WithBearerToken instead of setting it directly.
var BearerTokenCtxKey = contextKey("bearerToken")

// WithBearerToken returns a context that makes the transport send token
// instead of the session's current token. An empty token sends the request
// anonymously.
//
// Example usage:
//
//	// fetch the profile with a token that is not committed yet
//	ctx = utils.WithBearerToken(ctx, pendingToken)
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, BearerTokenCtxKey, token)
}

// BearerTokenFromContext retrieves the bearer token override from the context.
//
// Returns the token and an ok flag:
//   - ok == true  - an override is present (the token may be empty)
//   - ok == false - no override; the caller should use its default token
func BearerTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(BearerTokenCtxKey).(string)
	return token, ok
}
