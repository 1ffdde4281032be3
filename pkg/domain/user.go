package domain

import "github.com/google/uuid"

// UserID identifies the owner of simulations; it is the subject of the
// caller's bearer token.
type UserID uuid.UUID

// String returns the canonical UUID form of the id.
func (id UserID) String() string { return uuid.UUID(id).String() }
