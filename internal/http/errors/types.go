package errors

import (
	"fmt"
	"net/http"
)

// AppError define la estructura estándar para errores de la aplicación.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"` // No se serializa, usado para el header
	Err        error  `json:"-"` // Error original (causa), útil para logs, no se expone al cliente
}

// Error implementa la interfaz error
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap permite acceder al error original
func (e *AppError) Unwrap() error {
	return e.Err
}

// New crea un nuevo AppError
func New(status int, code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}

// FromError intenta convertir un error genérico en un AppError.
// Si no es un AppError, devuelve un error interno genérico conservando la causa.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternalServerError.WithCause(err)
}

// WithDetail agrega detalles adicionales al error (útil para validaciones).
// Devuelve una COPIA del error para no mutar las variables globales base.
func (e *AppError) WithDetail(detail string) *AppError {
	newErr := *e
	newErr.Detail = detail
	return &newErr
}

// WithCause agrega el error original (causa).
// Devuelve una COPIA del error.
func (e *AppError) WithCause(err error) *AppError {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// =================================================================================
// LISTA DE ERRORES PREDEFINIDOS
// =================================================================================

var (
	// 400
	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "The request contains invalid syntax or missing parameters.",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrInvalidForm = &AppError{
		Code:       "INVALID_FORM",
		Message:    "Form not submitted correctly.",
		HTTPStatus: http.StatusBadRequest,
	}

	// 401
	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "Authentication required.",
		HTTPStatus: http.StatusUnauthorized,
	}
	ErrInvalidCredentials = &AppError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Username/Password combination is incorrect",
		HTTPStatus: http.StatusUnauthorized,
	}

	// 409
	ErrUsernameTaken = &AppError{
		Code:       "USERNAME_TAKEN",
		Message:    "A user with that username already exists",
		HTTPStatus: http.StatusConflict,
	}

	// 422
	ErrValidation = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "One or more fields are invalid.",
		HTTPStatus: http.StatusUnprocessableEntity,
	}

	// 429
	ErrRateLimited = &AppError{
		Code:       "RATE_LIMITED",
		Message:    "Too many requests.",
		HTTPStatus: http.StatusTooManyRequests,
	}

	// 500
	ErrInternalServerError = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "Something went wrong.",
		HTTPStatus: http.StatusInternalServerError,
	}

	// 502
	ErrRegistrationFailed = &AppError{
		Code:       "REGISTRATION_FAILED",
		Message:    "Something went wrong trying to create a new user.",
		HTTPStatus: http.StatusBadGateway,
	}
	ErrDirectoryUnavailable = &AppError{
		Code:       "DIRECTORY_UNAVAILABLE",
		Message:    "The user directory is temporarily unavailable.",
		HTTPStatus: http.StatusBadGateway,
	}
)
