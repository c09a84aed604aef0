package domain

import "errors"

// Sentinel errors; wrap with fmt.Errorf("...: %w", ...) and match with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrAlreadyExists       = errors.New("already exists")
	ErrFolderNotEmpty      = errors.New("folder not empty")
	ErrProtectedRoot       = errors.New("root folder cannot be deleted")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrReconcileInProgress = errors.New("reconciliation already in progress")
	ErrCycleInProgress     = errors.New("janitor cycle already in progress")
)
