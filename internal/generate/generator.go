package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ankivoice/internal/fileutil"
	"ankivoice/internal/logging"
	"ankivoice/internal/services"
	"ankivoice/internal/services/elevenlabs"
	"ankivoice/internal/tasklist"
	"ankivoice/internal/textutil"
)

// Synthesizer is the slice of the speech client the generator needs.
type Synthesizer interface {
	ResolveVoice(ctx context.Context) (elevenlabs.Voice, error)
	Synthesize(ctx context.Context, voiceID, text string) ([]byte, error)
}

// Sleeper pauses between tasks. It returns early with ctx.Err() on
// cancellation.
type Sleeper func(ctx context.Context, d time.Duration) error

// Result is the outcome of one task.
type Result struct {
	Index    int           `json:"index"`
	Task     tasklist.Task `json:"task"`
	Path     string        `json:"path,omitempty"`
	Bytes    int           `json:"bytes,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
	// Error is Err's message, kept for JSON output.
	Error string `json:"error,omitempty"`
	Code  int    `json:"code"`
}

// OK reports whether the task produced a file.
func (r Result) OK() bool {
	return r.Err == nil
}

// Summary aggregates one batch.
type Summary struct {
	MediaDir  string   `json:"media_dir"`
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Results   []Result `json:"results"`
}

// Generator writes synthesized audio into a media directory.
type Generator struct {
	synth      Synthesizer
	mediaDir   string
	delay      time.Duration
	sleep      Sleeper
	cacheVoice bool
	reporter   Reporter
	logger     *slog.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithDelay sets the pause between two tasks.
func WithDelay(d time.Duration) Option {
	return func(g *Generator) {
		if d >= 0 {
			g.delay = d
		}
	}
}

// WithSleeper overrides how pauses are performed (useful for tests).
func WithSleeper(sleeper Sleeper) Option {
	return func(g *Generator) {
		if sleeper != nil {
			g.sleep = sleeper
		}
	}
}

// WithReporter routes per-task progress to reporter.
func WithReporter(reporter Reporter) Option {
	return func(g *Generator) {
		if reporter != nil {
			g.reporter = reporter
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithVoiceCaching controls whether the voice is resolved once per batch
// (the default) or before every task.
func WithVoiceCaching(enabled bool) Option {
	return func(g *Generator) {
		g.cacheVoice = enabled
	}
}

// NewGenerator constructs a generator writing into mediaDir.
func NewGenerator(synth Synthesizer, mediaDir string, opts ...Option) *Generator {
	g := &Generator{
		synth:      synth,
		mediaDir:   mediaDir,
		delay:      time.Second,
		sleep:      sleepContext,
		cacheVoice: true,
		reporter:   nopReporter{},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logging.NewComponentLogger(g.logger, "generator")
	return g
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes tasks in order. The returned error is non-nil only when the
// media directory cannot be created or ctx is cancelled; per-task failures
// are reported in the summary.
func (g *Generator) Run(ctx context.Context, tasks []tasklist.Task) (Summary, error) {
	summary := Summary{MediaDir: g.mediaDir, Total: len(tasks)}
	if err := os.MkdirAll(g.mediaDir, 0o755); err != nil {
		return summary, fmt.Errorf("create media directory %s: %w", g.mediaDir, err)
	}
	g.reporter.BatchStarted(len(tasks), g.mediaDir)
	g.logger.Info("audio generation started",
		logging.Int(logging.FieldTaskCount, len(tasks)),
		logging.String("media_dir", g.mediaDir),
		logging.Bool("cache_voice", g.cacheVoice),
	)

	var (
		voice    elevenlabs.Voice
		voiceErr error
	)
	if g.cacheVoice && len(tasks) > 0 {
		voice, voiceErr = g.synth.ResolveVoice(ctx)
		g.logVoice(voice, voiceErr)
	}

	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			g.reporter.BatchFinished(summary)
			return summary, err
		}
		g.reporter.TaskStarted(i, len(tasks), task)

		result := Result{Index: i, Task: task}
		called := false
		switch {
		case !fileutil.IsPlainFileName(task.Filename):
			result.Err = services.Wrap(services.ErrMalformedInput, "generator", "validate",
				fmt.Sprintf("unsafe filename %q", task.Filename), nil)
		case g.cacheVoice && voiceErr != nil:
			result.Err = voiceErr
		default:
			current := voice
			if !g.cacheVoice {
				var err error
				current, err = g.synth.ResolveVoice(ctx)
				called = true
				if err != nil {
					result.Err = err
					break
				}
			}
			called = true
			g.synthesizeTask(ctx, current, &result)
		}
		result.Code = elevenlabs.ErrorCode(result.Err)
		if result.Err != nil {
			result.Error = result.Err.Error()
		}
		g.record(&summary, result)

		if called && i < len(tasks)-1 {
			if err := g.sleep(ctx, g.delay); err != nil {
				g.reporter.BatchFinished(summary)
				return summary, err
			}
		}
	}

	g.reporter.BatchFinished(summary)
	g.logger.Info("audio generation finished",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (g *Generator) synthesizeTask(ctx context.Context, voice elevenlabs.Voice, result *Result) {
	audio, err := g.synth.Synthesize(ctx, voice.ID, result.Task.Text)
	if err != nil {
		result.Err = err
		return
	}
	path := filepath.Join(g.mediaDir, result.Task.Filename)
	if err := fileutil.WriteFileAtomic(path, audio, 0o644); err != nil {
		result.Err = fmt.Errorf("write %s: %w", path, err)
		return
	}
	result.Path = path
	result.Bytes = len(audio)
	if duration, ok := ProbeDuration(audio); ok {
		result.Duration = duration
	}
}

func (g *Generator) record(summary *Summary, result Result) {
	summary.Results = append(summary.Results, result)
	attrs := []logging.Attr{
		logging.Int(logging.FieldTaskIndex, result.Index+1),
		logging.String(logging.FieldFile, result.Task.Filename),
	}
	if result.OK() {
		summary.Succeeded++
		g.logger.Debug("audio written", logging.Args(append(attrs,
			logging.Int("bytes", result.Bytes),
			logging.Duration("duration", result.Duration),
		)...)...)
	} else {
		summary.Failed++
		g.logger.Warn("audio generation failed", logging.Args(append(attrs,
			logging.Int(logging.FieldErrorCode, result.Code),
			logging.String("error_kind", services.Kind(result.Err)),
			logging.Error(result.Err),
		)...)...)
	}
	g.reporter.TaskFinished(result)
}

func (g *Generator) logVoice(voice elevenlabs.Voice, err error) {
	if err != nil {
		g.logger.Warn("voice resolution failed", logging.Error(err))
		return
	}
	attrs := []logging.Attr{
		logging.String("voice_name", voice.Name),
		logging.String("voice_id", voice.ID),
	}
	if named, ok := g.synth.(interface{ VoiceName() string }); ok {
		matched := strings.EqualFold(strings.TrimSpace(voice.Name), strings.TrimSpace(named.VoiceName()))
		attrs = append(attrs,
			logging.String("decision_result", textutil.Ternary(matched, "configured", "first_available")),
			logging.String("requested_voice", named.VoiceName()),
		)
	}
	g.logger.Info("voice selected", logging.Args(attrs...)...)
}
