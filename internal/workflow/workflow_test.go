package workflow_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ankivoice/internal/collection"
	"ankivoice/internal/config"
	"ankivoice/internal/fields"
	"ankivoice/internal/services"
	"ankivoice/internal/tasklist"
	"ankivoice/internal/testsupport"
	"ankivoice/internal/workflow"
)

func scenarioNotes() []testsupport.FixtureNote {
	return []testsupport.FixtureNote{
		{ID: 1, ModelID: testsupport.FixtureModelID, Fields: []string{"a", "b", "c", "d", "Dobrý den"}},
		{ID: 2, ModelID: testsupport.FixtureModelID, Fields: []string{"a", "b", "c", "d", "Ahoj [sound:x.mp3]"}},
		{ID: 3, ModelID: testsupport.FixtureModelID, Fields: []string{"a", "b", "c"}},
	}
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newRunner(t *testing.T, cfg *config.Config, opts ...workflow.Option) *workflow.Runner {
	t.Helper()
	opts = append([]workflow.Option{workflow.WithClock(func() time.Time { return fixedNow })}, opts...)
	return workflow.NewRunner(cfg, opts...)
}

func approve(context.Context, *workflow.Plan) (bool, error) { return true, nil }

func decline(context.Context, *workflow.Plan) (bool, error) { return false, nil }

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
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestPlanDoesNotWrite(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithNotes(scenarioNotes()...))
	runner := newRunner(t, cfg)

	plan, err := runner.Plan(context.Background(), workflow.PlanOptions{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(plan.Updates) != 1 || len(plan.Tasks) != 1 {
		t.Fatalf("unexpected plan: %d updates %d tasks", len(plan.Updates), len(plan.Tasks))
	}
	if flds, mod := testsupport.ReadFields(t, cfg.Paths.Collection, 1); strings.Contains(flds, "[sound:") || mod != 0 {
		t.Fatalf("Plan must not write, found %q mod=%d", flds, mod)
	}
	first, last, ok := plan.FilenameRange()
	if !ok || first != "_czech_frequency_1.mp3" || last != first {
		t.Fatalf("unexpected filename range %q..%q", first, last)
	}
}

func TestCommitAppliesPlanAndBacksUp(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithNotes(scenarioNotes()...))
	runner := newRunner(t, cfg)
	ctx := context.Background()

	plan, err := runner.Plan(ctx, workflow.PlanOptions{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	result, err := runner.Commit(ctx, plan)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if result.Applied != 1 {
		t.Fatalf("expected 1 applied, got %d", result.Applied)
	}
	flds, mod := testsupport.ReadFields(t, cfg.Paths.Collection, 1)
	if got := fields.Split(flds)[4]; got != "Dobrý den [sound:_czech_frequency_1.mp3]" {
		t.Fatalf("unexpected sentence %q", got)
	}
	if mod != fixedNow.Unix() {
		t.Fatalf("expected mod %d, got %d", fixedNow.Unix(), mod)
	}
	if result.Backup == "" {
		t.Fatal("expected backup path")
	}
	backupFlds, _ := testsupport.ReadFields(t, result.Backup, 1)
	if strings.Contains(backupFlds, "[sound:") {
		t.Fatal("backup should hold the pre-commit state")
	}

	again, err := runner.Plan(ctx, workflow.PlanOptions{})
	if err != nil {
		t.Fatalf("second Plan failed: %v", err)
	}
	if len(again.Updates) != 0 {
		t.Fatalf("expected idempotent second plan, got %d updates", len(again.Updates))
	}
}

func TestCommitDetectsConcurrentEdit(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithNotes(scenarioNotes()...))
	cfg.Annotation.Backup = false
	runner := newRunner(t, cfg)
	ctx := context.Background()

	plan, err := runner.Plan(ctx, workflow.PlanOptions{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	plan.Updates[0].Original = "edited elsewhere"

	_, err = runner.Commit(ctx, plan)
	if !errors.Is(err, collection.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAnnotateDeclinedStillWritesList(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithNotes(scenarioNotes()...))
	runner := newRunner(t, cfg)

	outcome, err := runner.Annotate(context.Background(), workflow.AnnotateRequest{
		Extract:   true,
		WriteList: true,
		Confirm:   decline,
	})
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if !outcome.Declined || outcome.Commit != nil {
		t.Fatalf("expected declined outcome, got %#v", outcome)
	}
	if !errors.Is(outcome.DeclinedError(), services.ErrUserDeclined) {
		t.Fatal("DeclinedError should carry ErrUserDeclined")
	}
	if flds, _ := testsupport.ReadFields(t, cfg.Paths.Collection, 1); strings.Contains(flds, "[sound:") {
		t.Fatal("declined plan must not write")
	}

	list, err := tasklist.Read(cfg.Paths.TaskList)
	if err != nil {
		t.Fatalf("read list: %v", err)
	}
	want := []tasklist.Task{
		{Filename: "_czech_frequency_1.mp3", Text: "Dobrý den"},
		{Filename: "x.mp3", Text: "Ahoj"},
	}
	if len(list.Tasks) != 2 || list.Tasks[0] != want[0] || list.Tasks[1] != want[1] {
		t.Fatalf("unexpected list %#v", list.Tasks)
	}
	if outcome.ListEntries != 2 || outcome.ListPath != cfg.Paths.TaskList {
		t.Fatalf("unexpected list outcome %#v", outcome)
	}
}

func TestAnnotateApprovedGeneratesAudio(t *testing.T) {
	var synthCalls atomic.Int32
	server := newProvider(t, &synthCalls)
	cfg := testsupport.NewConfig(t,
		testsupport.WithNotes(scenarioNotes()...),
		testsupport.WithBaseURL(server.URL),
	)
	runner := newRunner(t, cfg)

	outcome, err := runner.Annotate(context.Background(), workflow.AnnotateRequest{
		GenerateAudio: true,
		Confirm:       approve,
	})
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if outcome.Commit == nil || outcome.Commit.Applied != 1 {
		t.Fatalf("expected commit, got %#v", outcome.Commit)
	}
	if outcome.Generation == nil || outcome.Generation.Succeeded != 1 {
		t.Fatalf("expected one generated file, got %#v", outcome.Generation)
	}
	if synthCalls.Load() != 1 {
		t.Fatalf("expected 1 synthesis call, got %d", synthCalls.Load())
	}
	data, err := os.ReadFile(filepath.Join(cfg.Paths.MediaDir, "_czech_frequency_1.mp3"))
	if err != nil || string(data) != "mp3-bytes" {
		t.Fatalf("unexpected media file %q (%v)", data, err)
	}
}

func TestAnnotateDeclinedStillGeneratesAudio(t *testing.T) {
	var synthCalls atomic.Int32
	server := newProvider(t, &synthCalls)
	cfg := testsupport.NewConfig(t,
		testsupport.WithNotes(scenarioNotes()...),
		testsupport.WithBaseURL(server.URL),
	)
	runner := newRunner(t, cfg)

	outcome, err := runner.Annotate(context.Background(), workflow.AnnotateRequest{
		GenerateAudio: true,
		Confirm:       decline,
	})
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if !outcome.Declined || outcome.Generation == nil || outcome.Generation.Succeeded != 1 {
		t.Fatalf("unexpected outcome %#v", outcome)
	}
}

func TestGenerateRequiresAPIKey(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAPIKey(""))
	runner := newRunner(t, cfg)
	_, err := runner.Generate(context.Background(), []tasklist.Task{{Filename: "a.mp3", Text: "Ahoj"}})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestPlanMissingCollection(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := newRunner(t, cfg)
	_, err := runner.Plan(context.Background(), workflow.PlanOptions{})
	if !errors.Is(err, services.ErrMissingResource) {
		t.Fatalf("expected ErrMissingResource, got %v", err)
	}
}

func TestInspectTruncatesFields(t *testing.T) {
	long := strings.Repeat("ž", 150)
	cfg := testsupport.NewConfig(t, testsupport.WithNotes(
		testsupport.FixtureNote{ID: 1, ModelID: testsupport.FixtureModelID, Tags: " verb ", Fields: []string{long, "b"}},
		testsupport.SentenceNote(2, "Ahoj"),
	))
	runner := newRunner(t, cfg)

	inspection, err := runner.Inspect(context.Background())
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if inspection.NoteCount != 2 || len(inspection.Samples) != 2 || len(inspection.NoteTypes) != 1 {
		t.Fatalf("unexpected inspection %#v", inspection)
	}
	first := inspection.Samples[0]
	if first.Tags != " verb " {
		t.Fatalf("tags should pass through, got %q", first.Tags)
	}
	if want := strings.Repeat("ž", 100) + "..."; first.Fields[0] != want {
		t.Fatalf("expected truncated field, got %d runes", len([]rune(first.Fields[0])))
	}
}

func TestLoadListAndGenerate(t *testing.T) {
	var synthCalls atomic.Int32
	server := newProvider(t, &synthCalls)
	cfg := testsupport.NewConfig(t, testsupport.WithBaseURL(server.URL))
	if err := os.WriteFile(cfg.Paths.TaskList, []byte("a.mp3|Jedna\nbroken line\n\nb.mp3|Dva\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runner := newRunner(t, cfg)

	list, err := runner.LoadList("")
	if err != nil {
		t.Fatalf("LoadList failed: %v", err)
	}
	if len(list.Tasks) != 2 || list.Discarded != 1 {
		t.Fatalf("unexpected list %#v", list)
	}
	summary, err := runner.Generate(context.Background(), list.Tasks)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if summary.Succeeded != 2 || synthCalls.Load() != 2 {
		t.Fatalf("unexpected summary %#v", summary)
	}
}
