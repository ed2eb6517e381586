package collection_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ankivoice/internal/collection"
	"ankivoice/internal/services"
	"ankivoice/internal/testsupport"
)

func openFixture(t *testing.T, notes ...testsupport.FixtureNote) (*collection.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collection.anki21")
	testsupport.WriteCollection(t, path, notes...)
	store, err := collection.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestOpenMissingCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.anki21")
	_, err := collection.Open(context.Background(), path)
	if !errors.Is(err, services.ErrMissingResource) {
		t.Fatalf("expected ErrMissingResource, got %v", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatal("Open must not create a missing collection")
	}
}

func TestOpenRejectsNonAnkiDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.anki21")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := collection.Open(context.Background(), path)
	if !errors.Is(err, services.ErrMissingResource) {
		t.Fatalf("expected ErrMissingResource for schema-less db, got %v", err)
	}
}

func TestOpenHoldsExclusiveLock(t *testing.T) {
	_, path := openFixture(t, testsupport.SentenceNote(1, "Ahoj"))
	_, err := collection.Open(context.Background(), path)
	if !errors.Is(err, collection.ErrLocked) {
		t.Fatalf("expected ErrLocked for second open, got %v", err)
	}
}

func TestListNotesOrderedByID(t *testing.T) {
	store, _ := openFixture(t,
		testsupport.SentenceNote(30, "Tři"),
		testsupport.SentenceNote(10, "Jedna"),
		testsupport.SentenceNote(20, "Dva"),
	)
	notes, err := store.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	for i, want := range []int64{10, 20, 30} {
		if notes[i].ID != want {
			t.Fatalf("note %d has id %d, want %d", i, notes[i].ID, want)
		}
	}
	if notes[0].ModelID != testsupport.FixtureModelID {
		t.Fatalf("unexpected model id %d", notes[0].ModelID)
	}

	count, err := store.CountNotes(context.Background())
	if err != nil || count != 3 {
		t.Fatalf("CountNotes = %d, %v", count, err)
	}

	sample, err := store.SampleNotes(context.Background(), 2)
	if err != nil || len(sample) != 2 || sample[1].ID != 20 {
		t.Fatalf("unexpected sample %#v (err %v)", sample, err)
	}
}

func TestNoteTypes(t *testing.T) {
	store, _ := openFixture(t)
	types, err := store.NoteTypes(context.Background())
	if err != nil {
		t.Fatalf("NoteTypes failed: %v", err)
	}
	if len(types) != 1 {
		t.Fatalf("expected 1 note type, got %d", len(types))
	}
	if types[0].Name != "Czech Frequency" || len(types[0].Fields) != 5 || types[0].Fields[4] != "Sentence" {
		t.Fatalf("unexpected note type %#v", types[0])
	}
}

func TestApplyUpdatesStampsModified(t *testing.T) {
	store, path := openFixture(t, testsupport.SentenceNote(1, "Ahoj"), testsupport.SentenceNote(2, "Čau"))
	ctx := context.Background()
	notes, err := store.ListNotes(ctx)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}

	now := time.Unix(1_750_000_000, 0)
	updates := []collection.Update{
		{NoteID: 1, Original: notes[0].Fields, Updated: notes[0].Fields + " [sound:a.mp3]"},
	}
	applied, err := store.ApplyUpdates(ctx, updates, now)
	if err != nil {
		t.Fatalf("ApplyUpdates failed: %v", err)
	}
	if applied != 1 {
		t.Fatalf("expected 1 applied update, got %d", applied)
	}

	flds, mod := testsupport.ReadFields(t, path, 1)
	if flds != updates[0].Updated || mod != now.Unix() {
		t.Fatalf("unexpected stored note: %q mod=%d", flds, mod)
	}
	if _, untouched := testsupport.ReadFields(t, path, 2); untouched != 0 {
		t.Fatalf("note 2 should keep mod 0, got %d", untouched)
	}
}

func TestApplyUpdatesConflictRollsBack(t *testing.T) {
	store, path := openFixture(t, testsupport.SentenceNote(1, "Ahoj"), testsupport.SentenceNote(2, "Čau"))
	ctx := context.Background()
	notes, err := store.ListNotes(ctx)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}

	updates := []collection.Update{
		{NoteID: 1, Original: notes[0].Fields, Updated: "changed-1"},
		{NoteID: 2, Original: "stale blob", Updated: "changed-2"},
	}
	applied, err := store.ApplyUpdates(ctx, updates, time.Now())
	if !errors.Is(err, collection.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected nothing applied, got %d", applied)
	}
	if flds, _ := testsupport.ReadFields(t, path, 1); flds != notes[0].Fields {
		t.Fatalf("note 1 should be rolled back, got %q", flds)
	}
}

func TestApplyUpdatesEmpty(t *testing.T) {
	store, _ := openFixture(t)
	applied, err := store.ApplyUpdates(context.Background(), nil, time.Now())
	if err != nil || applied != 0 {
		t.Fatalf("ApplyUpdates(nil) = %d, %v", applied, err)
	}
}

func TestBackupWritesSnapshot(t *testing.T) {
	store, path := openFixture(t, testsupport.SentenceNote(1, "Ahoj"))
	dst := path + ".bak"
	if err := store.Backup(context.Background(), dst); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	flds, _ := testsupport.ReadFields(t, dst, 1)
	if flds != "slovo\x1fword\x1fnoun\x1f1\x1fAhoj" {
		t.Fatalf("unexpected snapshot contents %q", flds)
	}
	if err := store.Backup(context.Background(), dst); err == nil {
		t.Fatal("expected error when backup target exists")
	}
}
