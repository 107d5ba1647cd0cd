package domain

type TurnPhase string

const (
	TurnPhaseIdle    TurnPhase = "idle"
	TurnPhaseSending TurnPhase = "sending"
)

// TurnState tracks the single in-flight conversation turn of a session.
// Err holds the user-visible message of the last failed turn, cleared on the
// next submission.
type TurnState struct {
	Phase TurnPhase `json:"phase"`
	Err   string    `json:"error,omitempty"`
}
