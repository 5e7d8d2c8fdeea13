package models

import (
	"errors"
	"fmt"
)

// ValidationError is raised before any side effect when user input is
// unusable. Title and Message are shown to the user as a notice.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// Input validation errors
var (
	ErrNotEnoughText = &ValidationError{
		Title:   "Not enough text",
		Message: fmt.Sprintf("Please enter at least %d characters to analyze.", MinAnalysisTextLength),
	}
	ErrMissingInformation = &ValidationError{
		Title:   "Missing information",
		Message: "Please fill out all fields in the form.",
	}
)

// Session errors
var (
	ErrAnalysisPending = errors.New("analysis already in progress")
	ErrEmptyReply      = errors.New("model returned an empty reply")
)

// RemoteCallError wraps any failure of the outbound credibility call:
// transport errors, non-success statuses and undecodable replies.
type RemoteCallError struct {
	Op  string
	Err error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("remote call %s: %v", e.Op, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err carries a ValidationError and
// returns it.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
