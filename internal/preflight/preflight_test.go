package preflight

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ankivoice/internal/services/elevenlabs"
	"ankivoice/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckMediaDirectory_MissingButCreatable(t *testing.T) {
	result := CheckMediaDirectory("media", filepath.Join(t.TempDir(), "collection.media"))
	if !result.Passed || !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("expected pass with creation note, got: %+v", result)
	}
}

func TestCheckMediaDirectory_ParentMissing(t *testing.T) {
	result := CheckMediaDirectory("media", filepath.Join(t.TempDir(), "a", "b"))
	if result.Passed {
		t.Fatal("expected failure when parent is missing")
	}
}

func TestCheckCollectionFile(t *testing.T) {
	dir := t.TempDir()
	if result := CheckCollectionFile("collection", filepath.Join(dir, "missing.anki21")); result.Passed {
		t.Fatal("expected failure for missing collection")
	}
	if result := CheckCollectionFile("collection", dir); result.Passed {
		t.Fatal("expected failure for directory path")
	}
	path := filepath.Join(dir, "collection.anki21")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckCollectionFile("collection", path); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckElevenLabs_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("xi-api-key") != "good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"voices":[{"voice_id":"v2","name":"George"}]}`)
	}))
	defer srv.Close()

	client := elevenlabs.NewClient(elevenlabs.Config{APIKey: "good-key", BaseURL: srv.URL})
	result := CheckElevenLabs(context.Background(), client)
	if !result.Passed || !strings.Contains(result.Detail, "George") {
		t.Fatalf("expected pass naming the voice, got: %+v", result)
	}
}

func TestCheckElevenLabs_BadKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := elevenlabs.NewClient(elevenlabs.Config{APIKey: "bad-key", BaseURL: srv.URL})
	result := CheckElevenLabs(context.Background(), client)
	if result.Passed {
		t.Fatal("expected failure for bad key")
	}
	if result.Detail != "auth failed (invalid api key)" {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestRunAllSkipsProviderWithoutKey(t *testing.T) {
	t.Setenv("ELEVEN_LABS_API_KEY", "")
	t.Setenv("ELEVENLABS_API_KEY", "")
	cfg := testsupport.NewConfig(t, testsupport.WithAPIKey(""), testsupport.WithNotes())

	results := RunAll(context.Background(), cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results without provider check, got %d", len(results))
	}
	if !results[0].Passed || !results[1].Passed {
		t.Fatalf("expected collection and media checks to pass: %+v", results)
	}
	if results[2].Passed {
		t.Fatal("expected missing API key to fail")
	}
	if !Failed(results) {
		t.Fatal("Failed should report the missing key")
	}
}
