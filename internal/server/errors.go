package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/averyk/creator-onboard/internal/docparse"
	"github.com/averyk/creator-onboard/internal/profiledb"
	"github.com/averyk/creator-onboard/internal/schemas"
	"github.com/averyk/creator-onboard/internal/smartsearch"
	"github.com/averyk/creator-onboard/internal/wizard"
)

// ErrEmailAlreadyExists indicates email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus maps an error to the appropriate HTTP status code. Submit errors
// are unwrapped first so the underlying cause picks the status.
func HTTPStatus(err error) int {
	var submitErr *wizard.SubmitError
	if errors.As(err, &submitErr) {
		if inner := submitErr.Unwrap(); inner != nil {
			err = inner
		}
	}

	var (
		validationErr  *wizard.ValidationError
		stepAccessErr  *wizard.StepAccessError
		busyErr        *wizard.BusyError
		schemaErr      *schemas.ValidationError
		parseErr       *docparse.ParseError
		searchErr      *smartsearch.SearchError
		notFoundErr    *profiledb.NotFoundError
		conflictErr    *profiledb.ConflictError
		noProfileErr   *smartsearch.NotFoundError
		emailTakenErr  *profiledb.EmailTakenError
		userNotFound   *profiledb.UserNotFoundError
		invalidCreds   *ErrInvalidCredentials
		emailExistsErr *ErrEmailAlreadyExists
		requestErr     *ErrValidation
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &stepAccessErr):
		return http.StatusForbidden
	case errors.As(err, &busyErr), errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &notFoundErr), errors.As(err, &noProfileErr), errors.As(err, &userNotFound):
		return http.StatusNotFound
	case errors.As(err, &searchErr):
		return http.StatusBadGateway
	case errors.As(err, &emailTakenErr), errors.As(err, &emailExistsErr):
		return http.StatusConflict
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &requestErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
