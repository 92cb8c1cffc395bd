package session

import (
	"context"
)

// DecisionKind enumerates the requester signals the session recognizes
// at its two suspension points.
type DecisionKind int

const (
	// Approve accepts the draft under review.
	Approve DecisionKind = iota
	// RequestChanges sends the draft back with feedback.
	RequestChanges
	// AbandonReview rejects the draft indefinitely.
	AbandonReview
	// ContinueSession starts the next job of a sequential session.
	ContinueSession
	// AbortSession skips all not-yet-started jobs and ends the session.
	AbortSession
)

// String returns the signal name.
func (k DecisionKind) String() string {
	switch k {
	case Approve:
		return "approve"
	case RequestChanges:
		return "request_changes"
	case AbandonReview:
		return "abandon_review"
	case ContinueSession:
		return "continue_session"
	case AbortSession:
		return "abort_session"
	default:
		return "unknown"
	}
}

// Decision is one requester signal. Feedback is only meaningful for
// RequestChanges.
type Decision struct {
	Kind     DecisionKind
	Feedback string
}

// ReviewPrompt is handed to the decider while a job is suspended in
// pending review, carrying everything the host needs to show the draft.
type ReviewPrompt struct {
	SessionID   string
	Platform    string
	DraftHandle string
	PreviewURL  string
	Revision    int
}

// GatePrompt is handed to the decider at the inter-job gate of a
// sequential session.
type GatePrompt struct {
	SessionID       string
	Completed       string
	CompletedStatus JobStatus
	Next            string
	Remaining       int
}

// Decider supplies requester decisions at the session's suspension
// points. Both calls block until a decision arrives or ctx is
// cancelled; cancellation while suspended skips the affected job(s)
// rather than failing them.
type Decider interface {
	// ReviewDecision resolves a pending-review suspension. Recognized
	// kinds: Approve, RequestChanges, AbandonReview.
	ReviewDecision(ctx context.Context, prompt ReviewPrompt) (Decision, error)

	// GateDecision resolves a sequential inter-job gate. Recognized
	// kinds: ContinueSession, AbortSession.
	GateDecision(ctx context.Context, prompt GatePrompt) (Decision, error)
}

// AutoDecider approves every draft and continues through every gate.
// It is the default when a host runs unattended.
type AutoDecider struct{}

// ReviewDecision approves immediately.
func (AutoDecider) ReviewDecision(context.Context, ReviewPrompt) (Decision, error) {
	return Decision{Kind: Approve}, nil
}

// GateDecision continues immediately.
func (AutoDecider) GateDecision(context.Context, GatePrompt) (Decision, error) {
	return Decision{Kind: ContinueSession}, nil
}

// ReviewRequest pairs a review prompt with its reply channel. Each
// suspended job gets its own reply channel, so parallel review jobs
// never race for the same decision.
type ReviewRequest struct {
	Prompt ReviewPrompt
	Reply  chan<- Decision
}

// GateRequest pairs a gate prompt with its reply channel.
type GateRequest struct {
	Prompt GatePrompt
	Reply  chan<- Decision
}

// ChanDecider bridges an interactive host: requests go out on the
// request channels, and the host answers each on its Reply channel.
type ChanDecider struct {
	ReviewRequests chan ReviewRequest
	GateRequests   chan GateRequest
}

// NewChanDecider creates a channel-backed decider with unbuffered
// request channels.
func NewChanDecider() *ChanDecider {
	return &ChanDecider{
		ReviewRequests: make(chan ReviewRequest),
		GateRequests:   make(chan GateRequest),
	}
}

// ReviewDecision implements Decider.
func (d *ChanDecider) ReviewDecision(ctx context.Context, prompt ReviewPrompt) (Decision, error) {
	reply := make(chan Decision, 1)
	select {
	case d.ReviewRequests <- ReviewRequest{Prompt: prompt, Reply: reply}:
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
	select {
	case decision := <-reply:
		return decision, nil
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
}

// GateDecision implements Decider.
func (d *ChanDecider) GateDecision(ctx context.Context, prompt GatePrompt) (Decision, error) {
	reply := make(chan Decision, 1)
	select {
	case d.GateRequests <- GateRequest{Prompt: prompt, Reply: reply}:
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
	select {
	case decision := <-reply:
		return decision, nil
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
}
