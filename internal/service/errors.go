package service

import (
	"errors"
	"fmt"
)

// --- Error Definitions ---
var (
	ErrValidationFailed     = errors.New("validation failed")
	ErrConfirmationRequired = errors.New("destructive action requires confirmation")
	ErrWorkoutNotFound      = errors.New("workout not found")
	ErrNoActiveCycle        = errors.New("no active training cycle")
	ErrNoAnnualPlan         = errors.New("no annual plan")
	ErrGenerationInProgress = errors.New("a workout generation is already in progress")
	ErrGenerationFailed     = errors.New("workout generation failed")
	ErrChatFailed           = errors.New("assistant request failed")
	ErrInvalidImport        = errors.New("invalid import file")
	ErrBackupsDisabled      = errors.New("backups are not configured")
)

// validationError wraps ErrValidationFailed with the offending field.
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

// requireConfirmation guards destructive operations.
func requireConfirmation(confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return nil
}
