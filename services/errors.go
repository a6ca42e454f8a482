package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both absent entities and entities deliberately
	// hidden from the actor; callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the actor lacks the required role or ownership.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
