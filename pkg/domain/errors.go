package domain

import "errors"

const (
	AnalysisFailureMessage = "Failed to analyze image. Please try again."
	ChatFailureMessage     = "Failed to send message."
	LocationFailureMessage = "Failed to find nearby specialists. Please try again."
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyTurn       = errors.New("turn has no text and no image")
	ErrTurnInFlight    = errors.New("another turn is already in flight")
)

// AnalysisError reports a failed or unparsable image-analysis call.
type AnalysisError struct {
	Cause error
}

func (e *AnalysisError) Error() string { return "analysis failed: " + e.Cause.Error() }

func (e *AnalysisError) Unwrap() error { return e.Cause }

func (e *AnalysisError) UserMessage() string { return AnalysisFailureMessage }

// ChatError reports a failed chat-completion call.
type ChatError struct {
	Cause error
}

func (e *ChatError) Error() string { return "chat failed: " + e.Cause.Error() }

func (e *ChatError) Unwrap() error { return e.Cause }

func (e *ChatError) UserMessage() string { return ChatFailureMessage }

// LocationError reports a failed specialist lookup.
type LocationError struct {
	Cause error
}

func (e *LocationError) Error() string { return "specialist lookup failed: " + e.Cause.Error() }

func (e *LocationError) Unwrap() error { return e.Cause }

func (e *LocationError) UserMessage() string { return LocationFailureMessage }

// UserMessenger is implemented by failures that carry a message safe to show
// in the UI.
type UserMessenger interface {
	UserMessage() string
}

// UserMessage extracts the user-visible text of err, falling back to a
// generic line for unexpected failures.
func UserMessage(err error) string {
	var um UserMessenger
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return "Something went wrong."
}
