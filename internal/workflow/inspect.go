package workflow

import (
	"context"

	"ankivoice/internal/collection"
	"ankivoice/internal/fields"
	"ankivoice/internal/textutil"
)

const (
	inspectSampleSize = 5
	inspectFieldRunes = 100
)

// SampleNote is a note prepared for display.
type SampleNote struct {
	ID      int64    `json:"id"`
	ModelID int64    `json:"model_id"`
	Tags    string   `json:"tags"`
	Fields  []string `json:"fields"`
}

// Inspection summarizes the collection structure.
type Inspection struct {
	Collection string                `json:"collection"`
	NoteTypes  []collection.NoteType `json:"note_types"`
	NoteCount  int                   `json:"note_count"`
	Samples    []SampleNote          `json:"samples"`
}

// Inspect reports note types, the note count, and the first notes with each
// field cut to 100 characters.
func (r *Runner) Inspect(ctx context.Context) (*Inspection, error) {
	store, err := collection.Open(ctx, r.cfg.Paths.Collection)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	types, err := store.NoteTypes(ctx)
	if err != nil {
		return nil, err
	}
	count, err := store.CountNotes(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := store.SampleNotes(ctx, inspectSampleSize)
	if err != nil {
		return nil, err
	}

	inspection := &Inspection{
		Collection: r.cfg.Paths.Collection,
		NoteTypes:  types,
		NoteCount:  count,
	}
	for _, note := range notes {
		values := fields.Split(note.Fields)
		for i, value := range values {
			values[i] = textutil.Truncate(value, inspectFieldRunes)
		}
		inspection.Samples = append(inspection.Samples, SampleNote{
			ID:      note.ID,
			ModelID: note.ModelID,
			Tags:    note.Tags,
			Fields:  values,
		})
	}
	return inspection, nil
}
