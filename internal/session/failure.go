package session

import (
	"errors"
	"fmt"
)

// Kind classifies a Failure.
type Kind int

const (
	NetworkFailure   Kind = iota // Transport or decode error
	ValidationError              // Rejected locally before any request
	NoHintsAvailable             // Local hint budget exhausted
	ServerRejection              // Well-formed error response from the service
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case NetworkFailure:
		return "network_failure"
	case ValidationError:
		return "validation_error"
	case NoHintsAvailable:
		return "no_hints_available"
	case ServerRejection:
		return "server_rejection"
	default:
		return "unknown"
	}
}

// Failure is the error returned by every Client operation.
//
// Message is safe to show to the user verbatim. Err holds the underlying
// cause, if any.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Local reports whether the failure was produced without a network call.
func (f *Failure) Local() bool {
	return f.Kind == ValidationError || f.Kind == NoHintsAvailable
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// ErrBlankGuess is the cause of the ValidationError returned for an empty guess.
var ErrBlankGuess = errors.New("session: blank guess")

// User-facing messages.
const (
	MsgStartFailed  = "Failed to start game. Please try again."
	MsgBlankGuess   = "Please enter a guess"
	MsgGuessFailed  = "Failed to submit guess. Please try again."
	MsgNoHints      = "No hints available"
	MsgHintFailed   = "Failed to get hint. You may have already used this hint type."
	MsgCancelFailed = "Failed to cancel game."
	MsgUnknownHint  = "Unknown hint type"
)
