package vigenere

import (
	"errors"
	"fmt"
)

// Sentinel errors of the external cipher path. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrExternalProcess is returned when the external cipher process
	// exits non-zero or cannot be started. The captured diagnostic output
	// is always attached; no automatic retry is performed.
	ErrExternalProcess = errors.New("external cipher process failed")

	// ErrArtifactIO is returned when a temporary payload artifact cannot
	// be created, written, or read back. Deletion failures are logged as
	// warnings instead: by then the result has already been obtained.
	ErrArtifactIO = errors.New("temporary artifact i/o failed")
)

// ProcessError carries the exit status and captured standard-error output
// of a failed invocation. It matches [ErrExternalProcess] under errors.Is.
type ProcessError struct {
	// ExitCode is the process exit status. Zero when the process never
	// started.
	ExitCode int

	// Diagnostics is the captured standard-error content, or the spawn
	// failure message when the process never started.
	Diagnostics string

	// Err is the underlying spawn or wait error. On a non-zero exit it
	// carries the *exec.ExitError, joined with the context error when the
	// invocation was cancelled, so errors.As and errors.Is both reach it.
	Err error
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("external cipher process exited with code %d: %s", e.ExitCode, e.Diagnostics)
	}
	return fmt.Sprintf("external cipher process: %v: %s", e.Err, e.Diagnostics)
}

// Is reports whether target is [ErrExternalProcess], so errors.Is matches
// the sentinel without losing the structured fields.
func (e *ProcessError) Is(target error) bool {
	return target == ErrExternalProcess
}

// Unwrap exposes the underlying spawn/wait error for further inspection.
func (e *ProcessError) Unwrap() error {
	return e.Err
}
