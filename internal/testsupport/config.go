package testsupport

import (
	"path/filepath"
	"testing"

	"ankivoice/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Synthesis runs without delay and the API key is a placeholder; point the
// base URL at an httptest server with WithBaseURL.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.ElevenLabs.APIKey = "test"
	cfgVal.Paths.Collection = filepath.Join(base, "collection.anki21")
	cfgVal.Paths.MediaDir = filepath.Join(base, "collection.media")
	cfgVal.Paths.TaskList = filepath.Join(base, "czech_audio_list.txt")
	cfgVal.Paths.LogDir = ""
	cfgVal.Generation.DelayMillis = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIKey sets the ElevenLabs API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.ElevenLabs.APIKey = key
	}
}

// WithBaseURL points the synthesis client at url.
func WithBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.ElevenLabs.BaseURL = url
	}
}

// WithNotes writes a collection fixture holding notes to the configured
// collection path.
func WithNotes(notes ...FixtureNote) ConfigOption {
	return func(b *configBuilder) {
		WriteCollection(b.t, b.cfg.Paths.Collection, notes...)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.Collection)
}
