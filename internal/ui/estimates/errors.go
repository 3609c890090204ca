package estimates

import (
	"errors"
	"strings"
)

const (
	msgLoadFailed    = "Failed to load estimates"
	msgCreateFailed  = "Failed to create estimate"
	msgApproveFailed = "Failed to approve estimate"
	msgRejectFailed  = "Failed to reject estimate"
	msgReasonMissing = "Please provide a reason for rejection"
)

var (
	ErrConfirmInFlight = errors.New("a confirmation is already in progress")
	ErrSubmitInFlight  = errors.New("a submission is already in progress")
)

// serverMessenger is implemented by transport errors that carry the message
// the backend put in its error body.
type serverMessenger interface {
	ServerMessage() string
}

// ViewError is what the views show the user. Message is display-ready; Err
// keeps the transport error for logging.
type ViewError struct {
	Message string
	Err     error
}

func (e *ViewError) Error() string { return e.Message }

func (e *ViewError) Unwrap() error { return e.Err }

// normalizeError prefers the server's message and falls back to a fixed one.
func normalizeError(err error, fallback string) *ViewError {
	var sm serverMessenger
	if errors.As(err, &sm) {
		if msg := strings.TrimSpace(sm.ServerMessage()); msg != "" {
			return &ViewError{Message: msg, Err: err}
		}
	}
	return &ViewError{Message: fallback, Err: err}
}

// displayMessage is the text a dialog shows for a failed callback.
func displayMessage(err error, fallback string) string {
	if msg := err.Error(); strings.TrimSpace(msg) != "" {
		return msg
	}
	return fallback
}
