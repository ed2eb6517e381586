package workflow

import (
	"context"
	"log/slog"
	"time"

	"ankivoice/internal/config"
	"ankivoice/internal/generate"
	"ankivoice/internal/logging"
	"ankivoice/internal/services/elevenlabs"
)

// Runner executes operations against the configured collection.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	reporter   generate.Reporter
	sleeper    generate.Sleeper
	clientOpts []elevenlabs.Option
	now        func() time.Time
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithReporter routes audio generation progress to reporter.
func WithReporter(reporter generate.Reporter) Option {
	return func(r *Runner) {
		r.reporter = reporter
	}
}

// WithSleeper overrides the pause between synthesis requests.
func WithSleeper(sleeper generate.Sleeper) Option {
	return func(r *Runner) {
		r.sleeper = sleeper
	}
}

// WithClientOptions passes options to the speech client built for each batch.
func WithClientOptions(opts ...elevenlabs.Option) Option {
	return func(r *Runner) {
		r.clientOpts = append(r.clientOpts, opts...)
	}
}

// WithClock overrides the time source used for commit stamps and backup names.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner constructs a runner for cfg.
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "workflow")
	return r
}

// Config returns the runner's configuration.
func (r *Runner) Config() *config.Config {
	return r.cfg
}

func (r *Runner) log(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, r.logger)
}
