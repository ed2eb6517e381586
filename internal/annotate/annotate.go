package annotate

import (
	"strconv"
	"strings"

	"ankivoice/internal/collection"
	"ankivoice/internal/fields"
	"ankivoice/internal/tasklist"
)

const (
	// DefaultFieldIndex is the zero-based position of the sentence field.
	DefaultFieldIndex = 4
	// DefaultPrefix starts every newly assigned audio filename.
	DefaultPrefix = "_czech_frequency_"
	// ProgressInterval is the number of notes between progress callbacks.
	ProgressInterval = 100
)

// Options controls a single annotation pass. The zero value targets field 0;
// start from DefaultOptions for the usual sentence field.
type Options struct {
	// Extract emits tasks for sentences that already carry a marker.
	Extract    bool
	FieldIndex int
	Prefix     string
	// Progress, when set, is called after every ProgressInterval notes with
	// the number of notes processed so far.
	Progress func(processed int)
}

// Counts summarizes one pass.
type Counts struct {
	Scanned   int `json:"scanned"`
	Skipped   int `json:"skipped"`
	Annotated int `json:"annotated"`
	// Existing counts sentences that already carried a marker.
	Existing  int `json:"existing"`
	Extracted int `json:"extracted"`
}

// Plan is the outcome of an annotation pass. Tasks lists new assignments and
// extracted entries interleaved in note order.
type Plan struct {
	Updates []collection.Update `json:"updates"`
	Tasks   []tasklist.Task     `json:"tasks"`
	Counts  Counts              `json:"counts"`
}

// Filename returns the audio filename assigned to the n-th new annotation.
func Filename(prefix string, n int) string {
	return prefix + strconv.Itoa(n) + ".mp3"
}

// Annotate scans notes in order. Notes without a non-empty sentence field are
// skipped. Sentences with an existing marker are never rewritten; with
// Extract set they contribute a task built from the marker. Every other
// sentence is assigned the next filename and gains a marker.
func Annotate(notes []collection.Note, opts Options) Plan {
	opts = withDefaults(opts)

	var plan Plan
	counter := 0
	for i, note := range notes {
		plan.Counts.Scanned++
		if opts.Progress != nil && (i+1)%ProgressInterval == 0 {
			opts.Progress(i + 1)
		}

		values := fields.Split(note.Fields)
		if len(values) <= opts.FieldIndex {
			plan.Counts.Skipped++
			continue
		}
		sentence := strings.TrimSpace(values[opts.FieldIndex])
		if sentence == "" {
			plan.Counts.Skipped++
			continue
		}

		if fields.HasMarker(sentence) {
			plan.Counts.Existing++
			if !opts.Extract {
				continue
			}
			if filename, text, ok := fields.ExtractMarker(sentence); ok {
				plan.Tasks = append(plan.Tasks, tasklist.Task{Filename: filename, Text: text})
				plan.Counts.Extracted++
			}
			continue
		}

		counter++
		filename := Filename(opts.Prefix, counter)
		values[opts.FieldIndex] = fields.AppendMarker(sentence, filename)
		plan.Updates = append(plan.Updates, collection.Update{
			NoteID:   note.ID,
			Original: note.Fields,
			Updated:  fields.Join(values),
			Filename: filename,
		})
		plan.Tasks = append(plan.Tasks, tasklist.Task{Filename: filename, Text: sentence})
		plan.Counts.Annotated++
	}
	return plan
}

// DefaultOptions returns options for the sentence field without extraction.
func DefaultOptions() Options {
	return Options{FieldIndex: DefaultFieldIndex, Prefix: DefaultPrefix}
}

func withDefaults(opts Options) Options {
	if opts.FieldIndex < 0 {
		opts.FieldIndex = DefaultFieldIndex
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	return opts
}

// SentenceAt returns the value at index of blob, or "" when the blob has too
// few fields.
func SentenceAt(blob string, index int) string {
	values := fields.Split(blob)
	if index < 0 || index >= len(values) {
		return ""
	}
	return values[index]
}
