package entities

import "errors"

// Domain errors
var (
	// Generic errors
	ErrValidation         = errors.New("validation failed")
	ErrPersistenceFailure = errors.New("persistence failure")

	// Alert errors
	ErrUnknownBatchKey = errors.New("unknown alert batch key")

	// Merge errors
	ErrConflictsUnresolved  = errors.New("merge conflicts unresolved")
	ErrInsufficientProfiles = errors.New("at least two profiles are required")
	ErrProfileNotFound      = errors.New("speaker profile not found")
	ErrProfileAlreadyMerged = errors.New("speaker profile already merged")

	// Workflow errors
	ErrStepNotSkippable = errors.New("step cannot be skipped")
	ErrInvalidStep      = errors.New("action not allowed at this step")
	ErrWorkflowFinished = errors.New("workflow finished")
	ErrSessionNotFound  = errors.New("workflow session not found")
	ErrRequestNotFound  = errors.New("identification request not found")

	// Source errors
	ErrSourceNotReady = errors.New("detection source not ready")

	// History errors
	ErrUnknownEntry = errors.New("history entry not found")
	ErrNotUndoable  = errors.New("history entry is not undoable")
)
