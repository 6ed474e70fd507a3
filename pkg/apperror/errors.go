package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrUnauthorized = errors.New("não autenticado")
	ErrForbidden    = errors.New("acesso negado")
	ErrValidation   = errors.New("dados inválidos")
	ErrConflict     = errors.New("conflito")
	ErrInternal     = errors.New("erro interno do servidor")
	ErrUnavailable  = errors.New("serviço indisponível")
)

// AppError carries a user-facing message together with the sentinel that
// decides its HTTP status.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message, ErrValidation)
}

func Conflict(message string) *AppError {
	return New(http.StatusBadRequest, message, ErrConflict)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, ErrNotFound)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, ErrForbidden)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, ErrUnauthorized)
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Message returns the text that is safe to show to API clients.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}
