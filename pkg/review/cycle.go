// Package review implements the draft preview/revise/approve state
// machine for platforms that support pre-publish editing.
package review

import (
	"context"

	"github.com/kart-io/eventcast/pkg/errors"
	"github.com/kart-io/eventcast/pkg/event"
	"github.com/kart-io/eventcast/pkg/logger"
	"github.com/kart-io/eventcast/pkg/platform"
)

// State is a review cycle state.
type State int

const (
	// StateCreated is the initial state; no draft exists yet.
	StateCreated State = iota
	// StatePendingReview means a draft exists and awaits the requester.
	StatePendingReview
	// StateUnderRevision means requester feedback is being applied.
	StateUnderRevision
	// StateApproved means the requester accepted the draft.
	StateApproved
	// StatePublished is terminal: the draft went live.
	StatePublished
	// StateAbandoned is terminal: the requester rejected the draft for
	// good, or a hard error occurred.
	StateAbandoned
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePendingReview:
		return "pending_review"
	case StateUnderRevision:
		return "under_revision"
	case StateApproved:
		return "approved"
	case StatePublished:
		return "published"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are legal.
func (s State) Terminal() bool {
	return s == StatePublished || s == StateAbandoned
}

// Cycle drives one adapter's draft through the review loop. A Cycle is
// owned by exactly one publish job and is not safe for concurrent use.
//
// Legal transitions:
//
//	Created        --Start--   PendingReview | Abandoned
//	PendingReview  --Approve-- Approved
//	PendingReview  --Revise--  PendingReview | Abandoned (via UnderRevision)
//	PendingReview  --Abandon-- Abandoned
//	Approved       --Publish-- Published | Abandoned
//
// Any other call returns an illegal-transition error and leaves the
// state untouched.
type Cycle struct {
	adapter       platform.ReviewAdapter
	state         State
	draftHandle   string
	previewURL    string
	revisionCount int
	cause         *errors.PublishError
	logger        logger.Logger
}

// NewCycle creates a cycle in StateCreated for a review-capable adapter.
func NewCycle(adapter platform.ReviewAdapter, log logger.Logger) *Cycle {
	if log == nil {
		log = logger.Discard
	}
	return &Cycle{
		adapter: adapter,
		state:   StateCreated,
		logger:  log,
	}
}

// State returns the current state.
func (c *Cycle) State() State { return c.state }

// DraftHandle returns the adapter-issued draft identifier, empty before
// Start succeeds.
func (c *Cycle) DraftHandle() string { return c.draftHandle }

// PreviewURL returns the draft preview link, when the adapter issued one.
func (c *Cycle) PreviewURL() string { return c.previewURL }

// RevisionCount returns how many revision loops have completed.
func (c *Cycle) RevisionCount() int { return c.revisionCount }

// Cause returns the error recorded when the cycle abandoned, nil
// otherwise.
func (c *Cycle) Cause() *errors.PublishError { return c.cause }

func (c *Cycle) ensure(from State, op string) error {
	if c.state != from {
		return errors.IllegalTransition(c.state.String(), op).
			WithPlatform(c.adapter.Name())
	}
	return nil
}

func (c *Cycle) abandon(err error) *errors.PublishError {
	c.cause = errors.AsPublishError(err).WithPlatform(c.adapter.Name())
	c.state = StateAbandoned
	c.logger.Warn("review cycle abandoned",
		"platform", c.adapter.Name(),
		"draft", c.draftHandle,
		"reason", c.cause.Reason())
	return c.cause
}

// Start creates the draft, moving Created to PendingReview. A create
// failure abandons the cycle with the error recorded.
func (c *Cycle) Start(ctx context.Context, ev *event.Event) error {
	if err := c.ensure(StateCreated, "create"); err != nil {
		return err
	}

	res, err := c.adapter.Create(ctx, ev)
	if err != nil {
		return c.abandon(err)
	}

	c.draftHandle = res.DraftHandle
	if c.draftHandle == "" {
		c.draftHandle = res.Ref
	}
	c.previewURL = res.URL
	c.state = StatePendingReview
	c.logger.Debug("draft created",
		"platform", c.adapter.Name(),
		"draft", c.draftHandle)
	return nil
}

// Approve records requester acceptance, moving PendingReview to Approved.
func (c *Cycle) Approve() error {
	if err := c.ensure(StatePendingReview, "approve"); err != nil {
		return err
	}
	c.state = StateApproved
	return nil
}

// Revise applies requester feedback through the adapter's Update and
// loops the draft back to PendingReview for re-review. An update
// failure abandons the cycle.
func (c *Cycle) Revise(ctx context.Context, ev *event.Event, feedback string) error {
	if err := c.ensure(StatePendingReview, "revise"); err != nil {
		return err
	}

	c.state = StateUnderRevision
	res, err := c.adapter.Update(ctx, c.draftHandle, ev, feedback)
	if err != nil {
		return c.abandon(err)
	}

	if res.DraftHandle != "" {
		c.draftHandle = res.DraftHandle
	}
	if res.URL != "" {
		c.previewURL = res.URL
	}
	c.revisionCount++
	c.state = StatePendingReview
	c.logger.Debug("draft revised",
		"platform", c.adapter.Name(),
		"draft", c.draftHandle,
		"revision", c.revisionCount)
	return nil
}

// Abandon records that the requester rejected the draft indefinitely.
func (c *Cycle) Abandon() error {
	if err := c.ensure(StatePendingReview, "abandon"); err != nil {
		return err
	}
	c.abandon(errors.New(errors.ErrReviewAbandoned, "requester abandoned the draft"))
	return nil
}

// Publish takes the approved draft live, moving Approved to Published.
// A publish failure abandons the cycle with the error recorded.
func (c *Cycle) Publish(ctx context.Context) (*platform.Result, error) {
	if err := c.ensure(StateApproved, "publish"); err != nil {
		return nil, err
	}

	res, err := c.adapter.Publish(ctx, c.draftHandle)
	if err != nil {
		return nil, c.abandon(err)
	}

	c.state = StatePublished
	c.logger.Info("draft published",
		"platform", c.adapter.Name(),
		"ref", res.Ref,
		"revisions", c.revisionCount)
	return res, nil
}
