package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// CommentID is a value object representing a unique comment identifier
type CommentID struct {
	value string
}

// NewCommentID creates a new random CommentID
func NewCommentID() CommentID {
	return CommentID{value: uuid.New().String()}
}

// NewCommentIDFromString creates a CommentID from an existing string
func NewCommentIDFromString(id string) (CommentID, error) {
	if id == "" {
		return CommentID{}, errors.New("comment ID cannot be empty")
	}
	if !isValidUUID(id) {
		return CommentID{}, errors.New("comment ID must be a valid UUID")
	}
	return CommentID{value: id}, nil
}

// String returns the string representation of the CommentID
func (id CommentID) String() string {
	return id.value
}

// Equals checks if two CommentIDs are equal
func (id CommentID) Equals(other CommentID) bool {
	return id.value == other.value
}

// IsZero checks if the CommentID is the zero value
func (id CommentID) IsZero() bool {
	return id.value == ""
}
