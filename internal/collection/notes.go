package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"ankivoice/internal/services"
)

const noteColumns = "id, mid, tags, flds, mod"

func scanNote(scanner interface{ Scan(dest ...any) error }) (Note, error) {
	var note Note
	if err := scanner.Scan(&note.ID, &note.ModelID, &note.Tags, &note.Fields, &note.Modified); err != nil {
		return Note{}, err
	}
	return note, nil
}

func (s *Store) queryNotes(ctx context.Context, query string, args ...any) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// ListNotes returns every note in ascending id order.
func (s *Store) ListNotes(ctx context.Context) ([]Note, error) {
	ctx = ensureContext(ctx)
	var notes []Note
	err := retryOnBusy(ctx, func() error {
		var err error
		notes, err = s.queryNotes(ctx, "SELECT "+noteColumns+" FROM notes ORDER BY id")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// SampleNotes returns up to limit notes in ascending id order.
func (s *Store) SampleNotes(ctx context.Context, limit int) ([]Note, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		return nil, nil
	}
	var notes []Note
	err := retryOnBusy(ctx, func() error {
		var err error
		notes, err = s.queryNotes(ctx, "SELECT "+noteColumns+" FROM notes ORDER BY id LIMIT ?", limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("sample notes: %w", err)
	}
	return notes, nil
}

// CountNotes returns the number of rows in the notes table.
func (s *Store) CountNotes(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes").Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return count, nil
}

type modelJSON struct {
	Name   string `json:"name"`
	Fields []struct {
		Name string `json:"name"`
	} `json:"flds"`
}

// NoteTypes decodes the note type definitions stored in col.models, ordered by
// id. Collections that keep note types in a separate table leave the column
// empty, which yields no types.
func (s *Store) NoteTypes(ctx context.Context) ([]NoteType, error) {
	ctx = ensureContext(ctx)
	var raw string
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx, "SELECT COALESCE(models, '') FROM col LIMIT 1").Scan(&raw)
	})
	if err != nil {
		return nil, fmt.Errorf("read note types: %w", err)
	}
	if raw == "" || raw == "{}" {
		return nil, nil
	}

	var models map[string]modelJSON
	if err := json.Unmarshal([]byte(raw), &models); err != nil {
		return nil, services.Wrap(services.ErrMalformedInput, "collection", "note types", "decode col.models", err)
	}
	types := make([]NoteType, 0, len(models))
	for id, model := range models {
		if model.Name == "" {
			continue
		}
		names := make([]string, 0, len(model.Fields))
		for _, field := range model.Fields {
			names = append(names, field.Name)
		}
		types = append(types, NoteType{ID: id, Name: model.Name, Fields: names})
	}
	sort.Slice(types, func(i, j int) bool {
		if len(types[i].ID) != len(types[j].ID) {
			return len(types[i].ID) < len(types[j].ID)
		}
		return types[i].ID < types[j].ID
	})
	return types, nil
}

// ApplyUpdates writes all updates in one transaction and stamps each note's
// mod column with now. If any note no longer holds its Original blob the
// transaction is rolled back and ErrConflict is returned; either every update
// lands or none does.
func (s *Store) ApplyUpdates(ctx context.Context, updates []Update, now time.Time) (int, error) {
	ctx = ensureContext(ctx)
	if len(updates) == 0 {
		return 0, nil
	}
	stamp := now.Unix()

	var applied int
	err := retryOnBusy(ctx, func() error {
		applied = 0
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx, "UPDATE notes SET flds = ?, mod = ? WHERE id = ? AND flds = ?")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, update := range updates {
			res, err := stmt.ExecContext(ctx, update.Updated, stamp, update.NoteID, update.Original)
			if err != nil {
				return err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w: note %d", ErrConflict, update.NoteID)
			}
			applied++
		}
		return tx.Commit()
	})
	if err != nil {
		return 0, fmt.Errorf("apply updates: %w", err)
	}
	return applied, nil
}
