package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found sentinel", fmt.Errorf("mentor: %w", ErrNotFound), http.StatusNotFound},
		{"unauthorized sentinel", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden sentinel", fmt.Errorf("wrap: %w", ErrForbidden), http.StatusForbidden},
		{"validation", Validation("título é obrigatório"), http.StatusBadRequest},
		{"conflict maps to 400", Conflict("Sessão cheia"), http.StatusBadRequest},
		{"unavailable", ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped app error keeps code", fmt.Errorf("ctx: %w", NotFound("Sessão não encontrada")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatus(tt.err))
		})
	}
}

func TestAppError_MessageAndUnwrap(t *testing.T) {
	err := Conflict("Email já cadastrado")

	assert.Equal(t, "Email já cadastrado", err.Error())
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Email já cadastrado", Message(fmt.Errorf("register: %w", err)))
}
