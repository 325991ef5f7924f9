package errorutil

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnauthorizedHidesCause(t *testing.T) {
	a := ToDomainError(NewUnauthorized(errors.New("token expired")))
	b := ToDomainError(NewUnauthorized(errors.New("signature mismatch")))

	assert.Equal(t, http.StatusUnauthorized, a.HTTPStatus)
	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, "unauthorized", a.Message)
}

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"wrapped domain error", fmt.Errorf("ctx: %w", NewConflict("email already registered", nil)), "CONFLICT", http.StatusConflict},
		{"no rows", sql.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"plain error", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
		{"fiber 404", fiber.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
		{"fiber 400", fiber.NewError(http.StatusBadRequest, "invalid payload"), "BAD_REQUEST", http.StatusBadRequest},
		{"fiber 401", fiber.ErrUnauthorized, "UNAUTHORIZED", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
		})
	}
}

func TestInternalErrorMessageIsGeneric(t *testing.T) {
	de := ToDomainError(errors.New("pq: connection refused to 10.0.0.5"))
	assert.Equal(t, "internal server error", de.Message)
	assert.ErrorContains(t, de, "connection refused")
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}
