package risk

import "fmt"

// Disposition for a piece of content after evaluation.
type Action string

const (
	ActionApprove Action = "approve"
	ActionManual  Action = "manual"
	ActionReject  Action = "reject"
)

func (a Action) String() string {
	return string(a)
}

func ParseAction(raw string) (Action, error) {
	switch Action(raw) {
	case ActionApprove, ActionManual, ActionReject:
		return Action(raw), nil
	}
	return "", fmt.Errorf("unknown risk action: %q", raw)
}

// Persisted risk lifecycle state on a content record. Content is created as
// "pending"; a "manual" action leaves it resting in "pending" with a
// populated score and reason for human review.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

// Status returns the persisted risk status corresponding to an action.
func (a Action) Status() Status {
	switch a {
	case ActionApprove:
		return StatusApproved
	case ActionReject:
		return StatusRejected
	default:
		return StatusPending
	}
}

// Fixed signal scores. These are a baked-in risk policy, kept stable for
// behavioral compatibility; changing them changes which content gets
// auto-rejected.
const (
	// any contact-info solicitation is categorically high-risk
	ScoreContact = 80
	// sensitive word hit, from store or fallback list
	ScoreSensitiveWord = 90
	// remote moderation "review" suggestion
	ScoreReview = 50
	// remote moderation "block" suggestion
	ScoreBlock = 90
)

// Action thresholds (closed intervals).
const (
	ThresholdReject = 80
	ThresholdManual = 50
)

// ActionForScore maps a combined 0-100 risk score to a disposition.
func ActionForScore(score int) Action {
	if score >= ThresholdReject {
		return ActionReject
	}
	if score >= ThresholdManual {
		return ActionManual
	}
	return ActionApprove
}

// Result is the engine's verdict for one piece of content. It is a pure
// value; the orchestrator projects it onto the content record's persisted
// risk fields.
type Result struct {
	// combined risk score, 0-100
	Score int
	// human-readable explanation, possibly composed from several
	// contributing signals; empty when nothing triggered
	Reason string
	Action Action
}
