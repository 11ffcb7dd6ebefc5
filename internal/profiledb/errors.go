package profiledb

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError indicates that no profile exists for a creator.
type NotFoundError struct {
	CreatorID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile not found for creator %s", e.CreatorID)
}

// ConflictError indicates an attempt to create a profile that already exists.
type ConflictError struct {
	CreatorID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("profile already exists for creator %s", e.CreatorID)
}

// UserNotFoundError indicates that a dashboard account was not found.
type UserNotFoundError struct {
	Email string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user not found: %s", e.Email)
}

// EmailTakenError indicates the email is already registered.
type EmailTakenError struct {
	Email string
}

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}
