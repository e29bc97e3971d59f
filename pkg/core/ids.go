package core

import "github.com/google/uuid"

// IDGenerator returns a new note identifier.
type IDGenerator func() string

// NewID returns a time-ordered UUIDv7, falling back to a random UUIDv4
// if the v7 generator fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
