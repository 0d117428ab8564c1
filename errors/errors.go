package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// AppError is the application error type returned to HTTP clients
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped error to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:  "Authentication token has expired",
	}
}

// Decision engine errors
func ErrValidation(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_VALIDATION,
		Message:  "Validation failed",
	}
}

func ErrConflictsUnresolved(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_CONFLICTS_UNRESOLVED,
		Message:  "Merge has unresolved conflicts",
	}
}

func ErrUnknownBatchKey(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_UNKNOWN_BATCH_KEY,
		Message:  "Alert not found",
	}
}

func ErrUnknownEntry(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_UNKNOWN_ENTRY,
		Message:  "History entry not found",
	}
}

func ErrNotUndoable(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_NOT_UNDOABLE,
		Message:  "History entry cannot be undone",
	}
}

func ErrWorkflowStep(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_WORKFLOW_STEP,
		Message:  "Action not allowed at the current step",
	}
}

func ErrWorkflowFinished(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_WORKFLOW_FINISHED,
		Message:  "Identification workflow already finished",
	}
}

func ErrProfileMerged(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_PROFILE_MERGED,
		Message:  "Speaker profile was already merged",
	}
}

func ErrSourceNotReady(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_SOURCE_NOT_READY,
		Message:  "Transcript is still processing",
	}
}

// ErrPersistenceFailure reports a failed collaborator write. The in-memory
// decision has already been applied when this is returned.
func ErrPersistenceFailure(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_PERSISTENCE_FAILURE,
		Message:  "Decision applied but could not be persisted",
	}
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrExternalAPIFailed(service string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_INTEGRATION_EXTERNAL_API_FAILED,
		Message:  fmt.Sprintf("External API call failed: %s", service),
	}
}

// FromDomain maps domain sentinel errors to an AppError. Errors that are
// already AppError are returned unchanged.
func FromDomain(err error) AppError {
	var appErr AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, entities.ErrConflictsUnresolved):
		return ErrConflictsUnresolved(err)
	case stdErrors.Is(err, entities.ErrUnknownBatchKey):
		return ErrUnknownBatchKey(err)
	case stdErrors.Is(err, entities.ErrUnknownEntry):
		return ErrUnknownEntry(err)
	case stdErrors.Is(err, entities.ErrNotUndoable):
		return ErrNotUndoable(err)
	case stdErrors.Is(err, entities.ErrStepNotSkippable), stdErrors.Is(err, entities.ErrInvalidStep):
		return ErrWorkflowStep(err)
	case stdErrors.Is(err, entities.ErrWorkflowFinished):
		return ErrWorkflowFinished(err)
	case stdErrors.Is(err, entities.ErrProfileAlreadyMerged):
		return ErrProfileMerged(err)
	case stdErrors.Is(err, entities.ErrSourceNotReady):
		return ErrSourceNotReady(err)
	case stdErrors.Is(err, entities.ErrValidation), stdErrors.Is(err, entities.ErrInsufficientProfiles):
		return ErrValidation(err)
	case stdErrors.Is(err, entities.ErrProfileNotFound):
		return ErrNotFound("Speaker profile")
	case stdErrors.Is(err, entities.ErrRequestNotFound):
		return ErrNotFound("Identification request")
	case stdErrors.Is(err, entities.ErrSessionNotFound):
		return ErrNotFound("Workflow session")
	case stdErrors.Is(err, entities.ErrPersistenceFailure):
		return ErrPersistenceFailure(err)
	}
	return ErrInternal(err)
}
