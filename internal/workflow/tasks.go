package workflow

import (
	"context"
	"fmt"

	"ankivoice/internal/generate"
	"ankivoice/internal/logging"
	"ankivoice/internal/services"
	"ankivoice/internal/services/elevenlabs"
	"ankivoice/internal/tasklist"
)

// ListPath returns path, or the configured task list when path is empty.
func (r *Runner) ListPath(path string) string {
	if path != "" {
		return path
	}
	return r.cfg.Paths.TaskList
}

// ExportList writes plan's tasks to path (the configured list when empty) and
// returns the number of entries written. An empty task set writes nothing.
func (r *Runner) ExportList(plan *Plan, path string) (int, error) {
	if plan == nil || len(plan.Tasks) == 0 {
		return 0, nil
	}
	path = r.ListPath(path)
	if err := tasklist.Write(path, plan.Tasks); err != nil {
		return 0, err
	}
	r.logger.Info("task list written", logging.String("path", path), logging.Int(logging.FieldTaskCount, len(plan.Tasks)))
	return len(plan.Tasks), nil
}

// LoadList reads a task list from path (the configured list when empty).
func (r *Runner) LoadList(path string) (tasklist.List, error) {
	path = r.ListPath(path)
	list, err := tasklist.Read(path)
	if err != nil {
		return tasklist.List{}, err
	}
	if list.Discarded > 0 {
		r.logger.Warn("task list lines without separator skipped",
			logging.String("path", path),
			logging.Int("discarded", list.Discarded),
		)
	}
	return list, nil
}

// Generate synthesizes audio for tasks into the media directory. It needs an
// API key; per-task failures are reported in the summary, not returned.
func (r *Runner) Generate(ctx context.Context, tasks []tasklist.Task) (generate.Summary, error) {
	if err := r.cfg.RequireAPIKey(); err != nil {
		return generate.Summary{}, services.Wrap(services.ErrConfiguration, "workflow", "generate", "", err)
	}
	client := elevenlabs.NewConfiguredClient(r.cfg, r.clientOpts...)
	opts := []generate.Option{
		generate.WithDelay(r.cfg.SynthesisDelay()),
		generate.WithVoiceCaching(r.cfg.Generation.CacheVoice),
		generate.WithLogger(logging.WithContext(ctx, r.logger)),
	}
	if r.reporter != nil {
		opts = append(opts, generate.WithReporter(r.reporter))
	}
	if r.sleeper != nil {
		opts = append(opts, generate.WithSleeper(r.sleeper))
	}
	summary, err := generate.NewGenerator(client, r.cfg.Paths.MediaDir, opts...).Run(ctx, tasks)
	if err != nil {
		return summary, fmt.Errorf("generate audio: %w", err)
	}
	return summary, nil
}
