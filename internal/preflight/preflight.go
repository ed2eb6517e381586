package preflight

import (
	"context"

	"ankivoice/internal/config"
	"ankivoice/internal/services/elevenlabs"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, opts ...elevenlabs.Option) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckCollectionFile("Collection", cfg.Paths.Collection),
		CheckMediaDirectory("Media directory", cfg.Paths.MediaDir),
		CheckAPIKey(cfg),
	}
	if cfg.ElevenLabs.APIKey != "" {
		results = append(results, CheckElevenLabs(ctx, elevenlabs.NewConfiguredClient(cfg, opts...)))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return true
		}
	}
	return false
}
