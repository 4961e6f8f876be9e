package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"validation", Validation("missing field: %s", "title"), KindValidation, http.StatusBadRequest},
		{"not found", NotFound("Property"), KindNotFound, http.StatusNotFound},
		{"conflict", Conflict("email already registered", nil), KindConflict, http.StatusConflict},
		{"internal", Internal("query failed", errors.New("boom")), KindInternal, http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("User")), KindNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			var e *Error
			if assert.True(t, errors.As(tt.err, &e)) {
				assert.Equal(t, tt.status, e.HTTPStatus())
			}
		})
	}
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsConflict(errors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Property not found", NotFound("Property").Error())

	cause := errors.New("disk full")
	err := Internal("saving property", cause)
	assert.Equal(t, "saving property: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
}
