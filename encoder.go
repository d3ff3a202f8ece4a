package hxconnect

import (
	"errors"

	"github.com/pthm/hxconnect/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a new snapshot encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// IsSnapshotError checks if err means a snapshot token was malformed,
// tampered with, or sealed with another key.
func IsSnapshotError(err error) bool {
	return errors.Is(err, encoding.ErrInvalidFormat) ||
		errors.Is(err, encoding.ErrSignatureInvalid) ||
		errors.Is(err, encoding.ErrDecryptFailed)
}
