package session

import (
	"errors"
	"fmt"

	"github.com/spigell/smart-ats/internal/ats"
)

// GenericFailure is shown for every transport or server failure; the cause is
// only logged.
const GenericFailure = "An error occurred during analysis. Please try again."

// ValidationError reports missing input detected before any request is sent.
// Its message is meant for the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrMissingResume         = &ValidationError{Message: "Please upload a resume first."}
	ErrMissingJobDescription = &ValidationError{Message: "Please provide a job description."}
	ErrUnknownAction         = &ValidationError{Message: "Unknown analysis action."}

	// ErrBusy is returned when an action is triggered while another one is in
	// flight. The session is left untouched.
	ErrBusy = errors.New("an analysis is already in progress")
)

// TransportError wraps any failure of an issued request: network, server,
// timeout, malformed payload or saving the exported file.
type TransportError struct {
	Action ats.Action
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func validate(action ats.Action, resume *ats.Resume, jobDescription string) *ValidationError {
	switch {
	case !action.Valid():
		return ErrUnknownAction
	case action.NeedsResume() && resume == nil:
		return ErrMissingResume
	case action.NeedsJobDescription() && isBlank(jobDescription):
		return ErrMissingJobDescription
	default:
		return nil
	}
}
