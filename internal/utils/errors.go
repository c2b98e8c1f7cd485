package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrNotFound           = errors.New("not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrUsernameExists     = errors.New("username_exists")
	ErrFileTooLarge       = errors.New("file_too_large")
	ErrHasDependents      = errors.New("has_dependents")

	// For external service failures (e.g., Twilio, SendGrid, OpenAI)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		RespondErrorWithCode(w, http.StatusNotFound, ErrCodeNotFound, "Resource not found", nil)
	case errors.Is(err, ErrInvalidCredentials):
		RespondErrorWithCode(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "Invalid username or password", nil)
	case errors.Is(err, ErrForbidden):
		RespondErrorWithCode(w, http.StatusForbidden, ErrCodeForbidden, "You do not have access to this resource", nil)
	case errors.Is(err, ErrUsernameExists):
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeConflict, "Username already exists", nil)
	case errors.Is(err, ErrHasDependents):
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeConflict, "Record still has dependent rows and cannot be deleted", nil)
	case errors.Is(err, ErrFileTooLarge):
		RespondErrorWithCode(w, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge, "Uploaded file exceeds the size limit", nil)
	case errors.Is(err, ErrExternalServiceFailure):
		RespondErrorWithCode(w, http.StatusBadGateway, ErrCodeExternalServiceFailure, "An external service call failed", nil, err)
	default:
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
