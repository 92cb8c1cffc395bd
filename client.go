package eventcast

import (
	"context"

	"github.com/kart-io/eventcast/observability"
	"github.com/kart-io/eventcast/pkg/event"
	"github.com/kart-io/eventcast/pkg/logger"
	"github.com/kart-io/eventcast/pkg/platform"
	"github.com/kart-io/eventcast/pkg/report"
	"github.com/kart-io/eventcast/pkg/session"
)

// Input is the raw event announcement as the user supplies it.
type Input = event.RawInput

// Strategy aliases for callers that only import the root package.
const (
	Parallel   = session.Parallel
	Sequential = session.Sequential
)

// Client is the entry point: it owns the platform registry, the report
// store, and the telemetry provider, and runs publish sessions.
type Client struct {
	registry *platform.Registry
	logger   logger.Logger
	tel      *observability.TelemetryProvider
	store    report.Store
	decider  session.Decider
}

// New builds a client from options. At least one platform must be
// registered before Publish can do anything useful, but an empty
// client is valid.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		logger:  logger.New(),
		store:   report.NewMemoryStore(),
		decider: session.AutoDecider{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var tel *observability.TelemetryProvider
	if cfg.telemetry != nil {
		var err error
		tel, err = observability.NewTelemetryProvider(cfg.telemetry)
		if err != nil {
			return nil, err
		}
	}

	registry := platform.NewRegistry(cfg.logger)
	for _, reg := range cfg.platforms {
		registry.RegisterFactory(reg.name, reg.factory)
	}

	return &Client{
		registry: registry,
		logger:   cfg.logger,
		tel:      tel,
		store:    cfg.store,
		decider:  cfg.decider,
	}, nil
}

// Platforms returns the names of all registered platforms.
func (c *Client) Platforms() []string {
	return c.registry.List()
}

// Registry exposes the platform registry for late registration.
func (c *Client) Registry() *platform.Registry {
	return c.registry
}

// NewSession validates the input, resolves the platforms, and returns
// an unstarted session. Use this instead of Publish when you need the
// session's feed or jobs while it runs.
func (c *Client) NewSession(input Input, platforms []string, strategy session.Strategy) (*session.Session, error) {
	ev, err := event.Build(input)
	if err != nil {
		return nil, err
	}
	adapters, err := c.registry.Resolve(platforms)
	if err != nil {
		return nil, err
	}
	return session.New(ev, adapters, strategy,
		session.WithDecider(c.decider),
		session.WithLogger(c.logger),
		session.WithTelemetry(c.tel),
	), nil
}

// Publish runs a full session to completion and persists its report.
// Only input validation and unknown platform names surface as an
// error; per-platform failures live in the report's outcomes.
func (c *Client) Publish(ctx context.Context, input Input, platforms []string, strategy session.Strategy) (*session.Report, error) {
	s, err := c.NewSession(input, platforms, strategy)
	if err != nil {
		return nil, err
	}

	rep := s.Run(ctx)
	if err := c.store.Save(ctx, rep); err != nil {
		c.logger.Warn("report not persisted", "session", rep.SessionID, "error", err)
	}
	return rep, nil
}

// Report loads a previously persisted report.
func (c *Client) Report(ctx context.Context, sessionID string) (*session.Report, error) {
	return c.store.Get(ctx, sessionID)
}

// Close flushes telemetry and releases store resources.
func (c *Client) Close(ctx context.Context) error {
	if closer, ok := c.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			c.logger.Warn("report store close failed", "error", err)
		}
	}
	if c.tel != nil {
		return c.tel.Shutdown(ctx)
	}
	return nil
}
