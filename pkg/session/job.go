package session

import (
	"context"

	"github.com/kart-io/eventcast/pkg/errors"
	"github.com/kart-io/eventcast/pkg/event"
	"github.com/kart-io/eventcast/pkg/logger"
	"github.com/kart-io/eventcast/pkg/platform"
	"github.com/kart-io/eventcast/pkg/review"
	"github.com/kart-io/eventcast/pkg/utils/idgen"
)

// JobStatus is the life cycle status of one publish job.
type JobStatus string

const (
	// StatusPending - the job has not started.
	StatusPending JobStatus = "pending"
	// StatusRunning - an adapter call is in flight.
	StatusRunning JobStatus = "running"
	// StatusAwaitingReview - the job is suspended on the requester.
	StatusAwaitingReview JobStatus = "awaiting_review"
	// StatusSucceeded - terminal, the platform artifact is live.
	StatusSucceeded JobStatus = "succeeded"
	// StatusFailed - terminal, with the error recorded.
	StatusFailed JobStatus = "failed"
	// StatusSkipped - terminal, never attempted or cancelled while
	// suspended. Cancellation is not an error.
	StatusSkipped JobStatus = "skipped"
)

// Terminal reports whether the status is final.
func (s JobStatus) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusSkipped
}

// Job is one adapter invocation bound to one platform within a session.
// It shares the adapter and the read-only event; it owns its status,
// its result, and the review cycle when the adapter supports one.
type Job struct {
	id      string
	adapter platform.Adapter
	status  JobStatus
	result  *platform.Result
	err     *errors.PublishError
	cycle   *review.Cycle

	decider Decider
	feed    *Feed
	logger  logger.Logger
}

func newJob(adapter platform.Adapter, decider Decider, feed *Feed, log logger.Logger) *Job {
	return &Job{
		id:      idgen.JobID(),
		adapter: adapter,
		status:  StatusPending,
		decider: decider,
		feed:    feed,
		logger:  log,
	}
}

// ID returns the job identifier.
func (j *Job) ID() string { return j.id }

// Platform returns the adapter identity this job publishes to.
func (j *Job) Platform() string { return j.adapter.Name() }

// Status returns the current job status.
func (j *Job) Status() JobStatus { return j.status }

// Result returns the platform result, present iff the job succeeded.
func (j *Job) Result() *platform.Result { return j.result }

// Err returns the recorded error, present iff the job failed.
func (j *Job) Err() *errors.PublishError { return j.err }

// ReviewCycle returns the cycle driven by this job, nil for non-review
// adapters or before the job ran.
func (j *Job) ReviewCycle() *review.Cycle { return j.cycle }

func (j *Job) transition(to JobStatus) {
	from := j.status
	if from == to {
		return
	}
	j.status = to
	j.feed.publish(Transition{Platform: j.adapter.Name(), From: from, To: to, At: nowFn()})
	j.logger.Debug("job status changed",
		"job", j.id, "platform", j.adapter.Name(), "from", from, "to", to)
}

func (j *Job) succeed(res *platform.Result) {
	j.result = res
	j.transition(StatusSucceeded)
}

func (j *Job) fail(err error) {
	j.err = errors.AsPublishError(err).WithPlatform(j.adapter.Name())
	j.transition(StatusFailed)
	j.logger.Warn("job failed",
		"job", j.id, "platform", j.adapter.Name(), "reason", j.err.Reason())
}

// skip marks a not-yet-terminal job as skipped.
func (j *Job) skip() {
	if j.status.Terminal() {
		return
	}
	j.transition(StatusSkipped)
}

// run drives the job to a terminal status. It never returns an error:
// every failure is contained in the job's own state.
func (j *Job) run(ctx context.Context, ev *event.Event, sessionID string) {
	j.transition(StatusRunning)

	if err := j.adapter.Validate(ev); err != nil {
		j.fail(err)
		return
	}

	if ra, ok := j.adapter.(platform.ReviewAdapter); ok && j.adapter.Capabilities().SupportsReview {
		j.runReview(ctx, ra, ev, sessionID)
		return
	}

	res, err := j.adapter.Create(ctx, ev)
	if err != nil {
		j.fail(err)
		return
	}
	j.succeed(res)
}

// runReview drives the adapter's review cycle to Published or
// Abandoned, suspending on the requester between revisions. A
// cancellation while suspended skips the job.
func (j *Job) runReview(ctx context.Context, ra platform.ReviewAdapter, ev *event.Event, sessionID string) {
	j.cycle = review.NewCycle(ra, j.logger)

	if err := j.cycle.Start(ctx, ev); err != nil {
		j.fail(err)
		return
	}

	for {
		j.transition(StatusAwaitingReview)
		decision, err := j.decider.ReviewDecision(ctx, ReviewPrompt{
			SessionID:   sessionID,
			Platform:    j.adapter.Name(),
			DraftHandle: j.cycle.DraftHandle(),
			PreviewURL:  j.cycle.PreviewURL(),
			Revision:    j.cycle.RevisionCount(),
		})
		if err != nil {
			j.skip()
			return
		}

		j.transition(StatusRunning)
		switch decision.Kind {
		case Approve:
			if err := j.cycle.Approve(); err != nil {
				j.fail(err)
				return
			}
			res, err := j.cycle.Publish(ctx)
			if err != nil {
				j.fail(err)
				return
			}
			j.succeed(res)
			return

		case RequestChanges:
			if err := j.cycle.Revise(ctx, ev, decision.Feedback); err != nil {
				j.fail(err)
				return
			}
			// Loop back for re-review.

		case AbandonReview:
			if err := j.cycle.Abandon(); err != nil {
				j.fail(err)
				return
			}
			j.fail(j.cycle.Cause())
			return

		default:
			j.fail(errors.Newf(errors.ErrUnknown,
				"decision %s is not valid during review", decision.Kind))
			return
		}
	}
}
