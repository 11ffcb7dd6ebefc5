// Package wizard implements the onboarding draft state machine: step
// progression, field mutation, merge reconciliation, local persistence, and
// submission.
package wizard

import (
	"errors"
	"fmt"
)

var (
	errNoParser   = errors.New("document parsing is not configured")
	errNoSearch   = errors.New("smart search is not configured")
	errNoProfiles = errors.New("profile store is not configured")
)

// ValidationError indicates a step whose requirements are not met. It blocks
// forward navigation and is recovered locally; nothing is retried.
type ValidationError struct {
	Step     int
	StepName string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %q is incomplete: %s", e.StepName, e.Message)
}

// StepAccessError indicates an attempt to jump past the first incomplete step
// in linear mode.
type StepAccessError struct {
	Requested    int
	RequiredStep int
	RequiredName string
}

func (e *StepAccessError) Error() string {
	return fmt.Sprintf("complete step %q before moving ahead", e.RequiredName)
}

// BusyError indicates a duplicate trigger while an asynchronous operation is
// already in flight. The second call is rejected, never buffered.
type BusyError struct {
	Operation string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("%s already in progress", e.Operation)
}

// SubmitError wraps a collaborator failure during submission. The
// collaborator's message is surfaced verbatim to the caller.
type SubmitError struct {
	Cause error
}

func (e *SubmitError) Error() string {
	return e.Cause.Error()
}

func (e *SubmitError) Unwrap() error {
	return e.Cause
}
