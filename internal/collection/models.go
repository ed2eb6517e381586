package collection

// Note is one row of the notes table.
type Note struct {
	ID       int64  `json:"id"`
	ModelID  int64  `json:"model_id"`
	Tags     string `json:"tags"`
	Fields   string `json:"fields"`
	Modified int64  `json:"mod"`
}

// Update replaces a note's field blob. Original is the blob observed when the
// update was planned; the write is rejected if the stored blob differs.
type Update struct {
	NoteID   int64  `json:"note_id"`
	Original string `json:"original"`
	Updated  string `json:"updated"`
	// Filename is the audio file the update references, kept for previews.
	Filename string `json:"filename"`
}

// NoteType describes one entry of the col.models JSON.
type NoteType struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}
