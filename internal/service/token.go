package service

import "github.com/google/uuid"

// TokenGenerator produces the value substituted for a placeholder. One
// generator is shared by all shard workers, so implementations must be safe
// for concurrent use and never repeat a value.
type TokenGenerator interface {
	NewToken() string
}

// UUIDGenerator yields random (version 4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewToken() string {
	return uuid.NewString()
}
