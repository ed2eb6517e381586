package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"ankivoice/internal/config"
	"ankivoice/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func scenarioNotes() []testsupport.FixtureNote {
	return []testsupport.FixtureNote{
		testsupport.SentenceNote(1, "Dobrý den"),
		testsupport.SentenceNote(2, "Ahoj [sound:x.mp3]"),
		{ID: 3, ModelID: testsupport.FixtureModelID, Fields: []string{"a", "b", "c"}},
	}
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("ELEVEN_LABS_API_KEY", "")
	t.Setenv("ELEVENLABS_API_KEY", "")
	t.Setenv("ANKIVOICE_MEDIA_DIR", "")

	opts = append([]testsupport.ConfigOption{testsupport.WithNotes(scenarioNotes()...)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func runCLI(t *testing.T, args []string, configPath, input string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
collection = %q
media_dir = %q
task_list = %q

[elevenlabs]
api_key = %q
base_url = %q

[generation]
delay_ms = 0

[logging]
level = "error"
`,
		cfg.Paths.Collection,
		cfg.Paths.MediaDir,
		cfg.Paths.TaskList,
		cfg.ElevenLabs.APIKey,
		cfg.ElevenLabs.BaseURL,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// newProvider serves one voice and answers every synthesis request with a
// fixed body.
func newProvider(t *testing.T, synthCalls *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/voices":
			_, _ = io.WriteString(w, `{"voices":[{"voice_id":"g1","name":"George"}]}`)
		case strings.HasPrefix(r.URL.Path, "/text-to-speech/"):
			synthCalls.Add(1)
			_, _ = io.WriteString(w, "mp3-bytes")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
