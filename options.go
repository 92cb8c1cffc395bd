package eventcast

import (
	"github.com/kart-io/eventcast/observability"
	"github.com/kart-io/eventcast/pkg/logger"
	"github.com/kart-io/eventcast/pkg/platform"
	"github.com/kart-io/eventcast/pkg/platforms/blog"
	"github.com/kart-io/eventcast/pkg/platforms/calendar"
	"github.com/kart-io/eventcast/pkg/platforms/manual"
	"github.com/kart-io/eventcast/pkg/platforms/scheduler"
	"github.com/kart-io/eventcast/pkg/report"
	"github.com/kart-io/eventcast/pkg/session"
)

// Option configures a Client at construction time.
type Option func(*clientConfig)

type clientConfig struct {
	logger    logger.Logger
	telemetry *observability.TelemetryConfig
	store     report.Store
	decider   session.Decider
	platforms []registration
}

type registration struct {
	name    string
	factory platform.Factory
}

// WithLogger sets the logger used by the client and every component it
// creates.
func WithLogger(log logger.Logger) Option {
	return func(cfg *clientConfig) {
		cfg.logger = log
	}
}

// WithLogLevel installs a console logger at the given level
// ("silent", "error", "warn", "info", "debug").
func WithLogLevel(level string) Option {
	return func(cfg *clientConfig) {
		cfg.logger = logger.NewConsoleLogger(level)
	}
}

// WithTelemetry enables OpenTelemetry tracing and metrics.
func WithTelemetry(tcfg *observability.TelemetryConfig) Option {
	return func(cfg *clientConfig) {
		cfg.telemetry = tcfg
	}
}

// WithReportStore sets where session reports are persisted. The
// default is an in-memory store.
func WithReportStore(store report.Store) Option {
	return func(cfg *clientConfig) {
		cfg.store = store
	}
}

// WithDecider sets the decider consulted at review pauses and
// sequential gates. The default approves and continues everything.
func WithDecider(d session.Decider) Option {
	return func(cfg *clientConfig) {
		cfg.decider = d
	}
}

// WithPlatform registers a custom platform factory.
func WithPlatform(name string, factory platform.Factory) Option {
	return func(cfg *clientConfig) {
		cfg.platforms = append(cfg.platforms, registration{name: name, factory: factory})
	}
}

// WithAdapter registers an already-constructed adapter.
func WithAdapter(a platform.Adapter) Option {
	return func(cfg *clientConfig) {
		cfg.platforms = append(cfg.platforms, registration{
			name: a.Name(),
			factory: func(logger.Logger) (platform.Adapter, error) {
				return a, nil
			},
		})
	}
}

// WithBlog configures the blog platform.
func WithBlog(bcfg *blog.Config) Option {
	return WithPlatform(blog.PlatformName, func(log logger.Logger) (platform.Adapter, error) {
		return blog.New(bcfg, log)
	})
}

// WithCalendar configures the calendar platform.
func WithCalendar(ccfg *calendar.Config) Option {
	return WithPlatform(calendar.PlatformName, func(log logger.Logger) (platform.Adapter, error) {
		return calendar.New(ccfg, log)
	})
}

// WithScheduler configures the community scheduled-events platform.
func WithScheduler(scfg *scheduler.Config) Option {
	return WithPlatform(scheduler.PlatformName, func(log logger.Logger) (platform.Adapter, error) {
		return scheduler.New(scfg, log)
	})
}

// WithManual enables the copy-paste channel.
func WithManual() Option {
	return WithPlatform(manual.PlatformName, func(log logger.Logger) (platform.Adapter, error) {
		return manual.New(log), nil
	})
}
