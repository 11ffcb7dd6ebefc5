package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidationOnlyAuthHandler() *AuthHandler {
	// No user service: these tests stop at request validation.
	return &AuthHandler{validator: validator.New()}
}

func TestAuthHandlerRejectsInvalidBody(t *testing.T) {
	handler := newValidationOnlyAuthHandler()

	rec := httptest.NewRecorder()
	handler.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("{broken")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	handler.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{broken")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerRejectsBadCredentialsShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Missing email", `{"password": "longenough1"}`},
		{"Malformed email", `{"email": "not-an-email", "password": "longenough1"}`},
		{"Short password", `{"email": "ana@example.com", "password": "short"}`},
		{"Missing password", `{"email": "ana@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newValidationOnlyAuthHandler()
			rec := httptest.NewRecorder()
			handler.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "validation error")
		})
	}
}

func TestExtractValidationErrors(t *testing.T) {
	v := validator.New()
	err := v.Struct(CredentialsRequest{Email: "nope", Password: "longenough1"})
	require.Error(t, err)

	msg := extractValidationErrors(err)
	assert.Contains(t, msg, "Email")
	assert.Contains(t, msg, "email")
}

func TestExtractValidationErrorsNonValidatorError(t *testing.T) {
	msg := extractValidationErrors(errors.New("something else"))
	assert.Equal(t, "validation error: invalid request", msg)
}
