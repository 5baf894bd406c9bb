// Package errors defines the failure taxonomy shared across the lahost daemon.
package errors

import (
	stderr "errors"
	"fmt"
)

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

// ResolutionError reports that no usable server executable could be found:
// the platform has no bundled binary and no override was configured.
type ResolutionError struct {
	Platform string
}

// Error is an implementation of the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no analysis server binary available for platform %q; set server.path to a local build", e.Platform)
}

// ProbeError reports that a resolved binary exists but failed its version
// check. Distinct from ResolutionError so callers can word guidance
// differently for a broken binary versus a missing one.
type ProbeError struct {
	Path     string
	ExitCode int
	Err      error
}

// Error is an implementation of the error interface.
func (e *ProbeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to run %q --version: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%q --version exited with code %d", e.Path, e.ExitCode)
}

// Unwrap returns the underlying execution error, if any.
func (e *ProbeError) Unwrap() error {
	return e.Err
}

// LaunchError reports that the server process could not be spawned or failed
// to bring up its transport.
type LaunchError struct {
	Path string
	Err  error
}

// Error is an implementation of the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("launching analysis server %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying spawn or transport error.
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// PatchError reports that the platform-specific binary patch step failed.
// The filesystem is restored to its pre-attempt shape before this is returned.
type PatchError struct {
	Path string
	Err  error
}

// Error is an implementation of the error interface.
func (e *PatchError) Error() string {
	return fmt.Sprintf("patching bundled server binary %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying patch error.
func (e *PatchError) Unwrap() error {
	return e.Err
}
