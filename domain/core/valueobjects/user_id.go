package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// UserID is a value object representing a unique user identifier
// Value objects are immutable and have no identity beyond their value
type UserID struct {
	value string
}

// NewUserID creates a new random UserID
func NewUserID() UserID {
	return UserID{value: uuid.New().String()}
}

// NewUserIDFromString creates a UserID from an existing string
func NewUserIDFromString(id string) (UserID, error) {
	if id == "" {
		return UserID{}, errors.New("user ID cannot be empty")
	}
	if !isValidUUID(id) {
		return UserID{}, errors.New("user ID must be a valid UUID")
	}
	return UserID{value: id}, nil
}

// String returns the string representation of the UserID
func (id UserID) String() string {
	return id.value
}

// Equals checks if two UserIDs are equal
func (id UserID) Equals(other UserID) bool {
	return id.value == other.value
}

// IsZero checks if the UserID is the zero value
func (id UserID) IsZero() bool {
	return id.value == ""
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
