package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFoundError("practicante not found"), http.StatusNotFound},
		{"wrapped sentinel", fmt.Errorf("get project 3: %w", ErrNotFound), http.StatusNotFound},
		{"bad request", NewBadRequestErrorWithDetails("invalid body", "nombre is required"), http.StatusBadRequest},
		{"upstream", NewUpstreamError("could not list practicantes", cause), http.StatusBadGateway},
		{"plain", cause, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewUpstreamError("could not update proyecto", cause)

	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "could not update proyecto: boom", err.Error())
}

func TestPublicMessageDropsCause(t *testing.T) {
	upstream := NewUpstreamError("practicantes fetch failed", errors.New("(42703) column practicantes.soft_skills does not exist"))
	assert.Equal(t, "practicantes fetch failed", PublicMessage(upstream))
	assert.Equal(t, "Validation failed: nombre is required", PublicMessage(NewBadRequestErrorWithDetails("Validation failed", "nombre is required")))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("dial tcp 10.0.0.3:5432: refused")))
	assert.Equal(t, "get project 3: not found", PublicMessage(fmt.Errorf("get project 3: %w", ErrNotFound)))
}
