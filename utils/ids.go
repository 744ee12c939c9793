package utils

import "github.com/google/uuid"

// IDGenerator produces unique identifiers for stored objects.
// Tests swap it for a deterministic generator.
type IDGenerator func() string

// NewUUID returns a random UUID string
func NewUUID() string {
	return uuid.NewString()
}

// StaticID returns a generator that always yields id
func StaticID(id string) IDGenerator {
	return func() string { return id }
}
