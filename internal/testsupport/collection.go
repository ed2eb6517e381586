package testsupport

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

// FixtureNote describes one note row written by WriteCollection. Fields are
// joined with the 0x1F separator.
type FixtureNote struct {
	ID      int64
	ModelID int64
	Tags    string
	Fields  []string
}

// SentenceNote builds a five-field note whose sentence field (index 4) holds
// sentence.
func SentenceNote(id int64, sentence string) FixtureNote {
	return FixtureNote{
		ID:      id,
		ModelID: FixtureModelID,
		Fields:  []string{"slovo", "word", "noun", "1", sentence},
	}
}

// FixtureModelID is the note type id registered in col.models by
// WriteCollection.
const FixtureModelID = 1700000000000

const fixtureModels = `{"1700000000000":{"name":"Czech Frequency","flds":[{"name":"Czech"},{"name":"English"},{"name":"Part of Speech"},{"name":"Rank"},{"name":"Sentence"}]}}`

const fixtureSchema = `
CREATE TABLE col (
	id integer PRIMARY KEY,
	crt integer NOT NULL,
	mod integer NOT NULL,
	models text NOT NULL
);
CREATE TABLE notes (
	id integer PRIMARY KEY,
	guid text NOT NULL,
	mid integer NOT NULL,
	mod integer NOT NULL,
	usn integer NOT NULL,
	tags text NOT NULL,
	flds text NOT NULL,
	sfld integer NOT NULL,
	csum integer NOT NULL,
	flags integer NOT NULL,
	data text NOT NULL
);`

// WriteCollection creates a minimal Anki collection database at path holding
// notes and one note type.
func WriteCollection(t testing.TB, path string, notes ...FixtureNote) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(fixtureSchema); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO col (id, crt, mod, models) VALUES (1, 0, 0, ?)`, fixtureModels); err != nil {
		t.Fatalf("insert col row: %v", err)
	}
	for _, note := range notes {
		_, err := db.Exec(
			`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
			 VALUES (?, ?, ?, 0, 0, ?, ?, '', 0, 0, '')`,
			note.ID, fmt.Sprintf("guid-%d", note.ID), note.ModelID, note.Tags, strings.Join(note.Fields, "\x1f"),
		)
		if err != nil {
			t.Fatalf("insert note %d: %v", note.ID, err)
		}
	}
}

// ReadFields returns the stored field blob and mod value of note id.
func ReadFields(t testing.TB, path string, id int64) (string, int64) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	var (
		flds string
		mod  int64
	)
	if err := db.QueryRow(`SELECT flds, mod FROM notes WHERE id = ?`, id).Scan(&flds, &mod); err != nil {
		t.Fatalf("read note %d: %v", id, err)
	}
	return flds, mod
}
