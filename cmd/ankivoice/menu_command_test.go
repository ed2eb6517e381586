package main

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"ankivoice/internal/testsupport"
)

func TestMenuInspect(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"menu"}, env.configPath, "1\n")
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	requireContains(t, out, "6. Extract existing audio references and generate text file")
	requireContains(t, out, "Total notes: 3")
}

func TestMenuAnnotateDeclined(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"menu"}, env.configPath, "2\nn\n")
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	requireContains(t, out, "No changes applied.")
	requireContains(t, out, "Audio files will be named:")

	flds, _ := testsupport.ReadFields(t, env.cfg.Paths.Collection, 1)
	if strings.Contains(flds, "[sound:") {
		t.Fatalf("declined menu run modified note: %q", flds)
	}
}

func TestMenuExtractDeclinedStillWritesList(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, choice := range []string{"3", "6"} {
		if err := os.Remove(env.cfg.Paths.TaskList); err != nil && !os.IsNotExist(err) {
			t.Fatalf("remove list: %v", err)
		}
		out, _, err := runCLI(t, []string{"menu"}, env.configPath, choice+"\nn\n")
		if err != nil {
			t.Fatalf("menu %s: %v", choice, err)
		}
		requireContains(t, out, "Generated text file")
		if _, err := os.Stat(env.cfg.Paths.TaskList); err != nil {
			t.Fatalf("menu %s: expected task list: %v", choice, err)
		}
	}
}

func TestMenuGenerateFromList(t *testing.T) {
	var synthCalls atomic.Int32
	server := newProvider(t, &synthCalls)
	env := setupCLITestEnv(t, testsupport.WithBaseURL(server.URL))

	listPath := filepath.Join(testsupport.BaseDir(env.cfg), "custom.txt")
	if err := os.WriteFile(listPath, []byte("a.mp3|Ahoj\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	out, _, err := runCLI(t, []string{"menu"}, env.configPath, "4\n"+listPath+"\n")
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	requireContains(t, out, "Audio generation complete! 1 succeeded, 0 failed.")
	if synthCalls.Load() != 1 {
		t.Fatalf("expected 1 synthesis call, got %d", synthCalls.Load())
	}
}

func TestMenuAnnotateAndGenerateDeclined(t *testing.T) {
	var synthCalls atomic.Int32
	server := newProvider(t, &synthCalls)
	env := setupCLITestEnv(t, testsupport.WithBaseURL(server.URL))

	out, _, err := runCLI(t, []string{"menu"}, env.configPath, "5\nn\n")
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	requireContains(t, out, "No changes applied.")
	requireContains(t, out, "1 succeeded")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.MediaDir, "_czech_frequency_1.mp3")); err != nil {
		t.Fatalf("expected generated audio: %v", err)
	}
}

func TestMenuInvalidChoice(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"menu"}, env.configPath, "9\n")
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	requireContains(t, out, "Invalid choice.")
}
