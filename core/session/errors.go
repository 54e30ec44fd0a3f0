package session

import "errors"

var (
	// ErrMalformedToken is returned when a token is not three dot-separated segments
	// with a decodable JSON payload.
	ErrMalformedToken = errors.New("malformed token")
	// ErrMissingExpiry is returned when the token payload has no exp claim.
	ErrMissingExpiry = errors.New("token has no expiry")
	// ErrNilStore is returned when a tier is configured without a store.
	ErrNilStore = errors.New("tier has no store")
	// ErrEmptyKey is returned when the canonical storage key is empty.
	ErrEmptyKey = errors.New("canonical storage key is required")
	// ErrPersistToken is returned when writing the token to a tier fails.
	ErrPersistToken = errors.New("failed to persist token")
	// ErrClearToken is returned when removing the token from a tier fails.
	ErrClearToken = errors.New("failed to clear token")
)
