// Package session implements the cross-platform publish orchestrator:
// it fans one canonical event out to N platform adapters under an
// execution strategy, isolates per-platform failures, and consolidates
// everything into a single report.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/kart-io/eventcast/observability"
	"github.com/kart-io/eventcast/pkg/event"
	"github.com/kart-io/eventcast/pkg/logger"
	"github.com/kart-io/eventcast/pkg/platform"
	"github.com/kart-io/eventcast/pkg/utils/idgen"
)

// nowFn is a test hook for transition timestamps.
var nowFn = time.Now

// Strategy selects how a session executes its jobs.
type Strategy int

const (
	// Parallel runs all jobs concurrently with no ordering guarantee;
	// one platform's failure never blocks another's job.
	Parallel Strategy = iota
	// Sequential runs jobs one at a time in selection order, suspending
	// for an explicit continue/abort decision between jobs.
	Sequential
)

// String returns the strategy name.
func (s Strategy) String() string {
	if s == Sequential {
		return "sequential"
	}
	return "parallel"
}

// Session owns the ordered set of publish jobs for one publish attempt.
// A session is created fresh per publish request and discarded once its
// report is delivered; it retains no cross-session state.
type Session struct {
	id       string
	event    *event.Event
	jobs     []*Job
	strategy Strategy
	decider  Decider
	feed     *Feed
	logger   logger.Logger
	tel      *observability.TelemetryProvider

	runOnce sync.Once
	report  *Report
}

// Option configures a session.
type Option func(*Session)

// WithDecider sets the requester-decision source. Defaults to
// AutoDecider (approve everything, continue through every gate).
func WithDecider(d Decider) Option {
	return func(s *Session) { s.decider = d }
}

// WithLogger sets the session logger. Defaults to logger.Discard.
func WithLogger(log logger.Logger) Option {
	return func(s *Session) { s.logger = log }
}

// WithTelemetry attaches a telemetry provider for spans and metrics.
func WithTelemetry(tel *observability.TelemetryProvider) Option {
	return func(s *Session) { s.tel = tel }
}

// New creates a session over an immutable event and an ordered set of
// adapters. The event must not be mutated after this call; adapters
// only ever read it.
func New(ev *event.Event, adapters []platform.Adapter, strategy Strategy, opts ...Option) *Session {
	s := &Session{
		id:       idgen.SessionID(),
		event:    ev,
		strategy: strategy,
		decider:  AutoDecider{},
		feed:     NewFeed(),
		logger:   logger.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, a := range adapters {
		s.jobs = append(s.jobs, newJob(a, s.decider, s.feed, s.logger))
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Feed returns the session's status transition stream.
func (s *Session) Feed() *Feed { return s.feed }

// Jobs returns the session's jobs in selection order.
func (s *Session) Jobs() []*Job { return s.jobs }

// Run executes the session to completion and returns the consolidated
// report. Run never fails as a whole: individual platform failures are
// contained in their outcomes. Calling Run more than once returns the
// same report.
func (s *Session) Run(ctx context.Context) *Report {
	s.runOnce.Do(func() {
		s.report = s.run(ctx)
	})
	return s.report
}

func (s *Session) run(ctx context.Context) *Report {
	startedAt := nowFn()
	ctx, end := s.tel.StartSession(ctx, s.id, s.strategy.String(), len(s.jobs))
	s.logger.Info("session started",
		"session", s.id, "strategy", s.strategy, "platforms", len(s.jobs))

	switch s.strategy {
	case Sequential:
		s.runSequential(ctx)
	default:
		s.runParallel(ctx)
	}

	// Every job must be terminal before the feed ends.
	for _, j := range s.jobs {
		j.skip()
	}
	s.feed.close()

	report := &Report{
		SessionID:  s.id,
		Strategy:   s.strategy.String(),
		Outcomes:   make([]Outcome, 0, len(s.jobs)),
		StartedAt:  startedAt,
		FinishedAt: nowFn(),
	}
	for _, j := range s.jobs {
		report.Outcomes = append(report.Outcomes, outcomeOf(j))
	}

	s.logger.Info("session finished",
		"session", s.id,
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
		"skipped", report.Skipped())
	end()
	return report
}

func (s *Session) runParallel(ctx context.Context) {
	var wg sync.WaitGroup
	for _, j := range s.jobs {
		wg.Add(1)
		go func(j *Job) {
			defer wg.Done()
			s.runJob(ctx, j)
		}(j)
	}
	wg.Wait()
}

func (s *Session) runSequential(ctx context.Context) {
	aborted := false
	for i, j := range s.jobs {
		if aborted || ctx.Err() != nil {
			j.skip()
			continue
		}

		s.runJob(ctx, j)

		if i == len(s.jobs)-1 {
			break
		}

		decision, err := s.decider.GateDecision(ctx, GatePrompt{
			SessionID:       s.id,
			Completed:       j.Platform(),
			CompletedStatus: j.Status(),
			Next:            s.jobs[i+1].Platform(),
			Remaining:       len(s.jobs) - i - 1,
		})
		if err != nil {
			// Cancelled while suspended at the gate: skip the rest.
			aborted = true
			continue
		}
		if decision.Kind != ContinueSession {
			if decision.Kind != AbortSession {
				s.logger.Warn("unexpected gate decision, aborting session",
					"session", s.id, "decision", decision.Kind)
			}
			aborted = true
		}
	}
}

func (s *Session) runJob(ctx context.Context, j *Job) {
	begin := nowFn()
	jctx, end := s.tel.StartJob(ctx, j.Platform())
	j.run(jctx, s.event, s.id)
	end(string(j.Status()))
	s.tel.RecordJob(ctx, j.Platform(), string(j.Status()), nowFn().Sub(begin))
}
