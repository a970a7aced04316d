// Package conversation implements the conversational gate: it sends a user
// utterance to the generative oracle under the domain prompt and classifies
// the reply into one of four outcomes.
package conversation

// OutcomeKind classifies a gate result.
type OutcomeKind string

const (
	// KindAnswer carries a substantive reply for the user.
	KindAnswer OutcomeKind = "answer"

	// KindNoAnswer means the oracle declined: the question is outside the
	// family-planning domain or unanswerable from its data.
	KindNoAnswer OutcomeKind = "no_answer"

	// KindComplete means the user signalled the conversation is over.
	KindComplete OutcomeKind = "complete"

	// KindUnavailable means the oracle could not be reached.  It is an
	// operational condition, never a content classification.
	KindUnavailable OutcomeKind = "unavailable"
)

// String returns the string representation of the outcome kind.
func (k OutcomeKind) String() string {
	return string(k)
}

// Outcome is the gate's result.  Reply is populated only for KindAnswer.
type Outcome struct {
	Kind  OutcomeKind `json:"kind"`
	Reply string      `json:"reply,omitempty"`
}
