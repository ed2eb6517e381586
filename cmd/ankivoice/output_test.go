package main

import (
	"bytes"
	"strings"
	"testing"

	"ankivoice/internal/preflight"
)

func TestStatusLine(t *testing.T) {
	ok := statusLine(preflight.Result{Name: "Collection", Passed: true, Detail: "readable"}, false)
	if !strings.Contains(ok, "Collection:") || !strings.Contains(ok, "[OK] readable") {
		t.Fatalf("unexpected line %q", ok)
	}
	failed := statusLine(preflight.Result{Name: "API key", Passed: false}, true)
	if !strings.HasPrefix(failed, ansiRed) || !strings.Contains(failed, "[ERROR]") {
		t.Fatalf("unexpected line %q", failed)
	}
}

func TestRenderTableKeepsAllCells(t *testing.T) {
	rendered := renderTable([]string{"Note", "Sentence"}, [][]string{{"42", "Dobrý den"}, {"7"}})
	for _, want := range []string{"42", "Dobrý den", "7"} {
		requireContains(t, rendered, want)
	}
}

func TestWriteJSONKeepsSentenceCharacters(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, map[string]string{"text": "Tom & Jerry <3"}); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	requireContains(t, buf.String(), "Tom & Jerry <3")
}
