// Package collection reads and updates notes inside an Anki collection
// database.
//
// Store wraps a single modernc SQLite connection to the collection file and an
// advisory lock on "<path>.lock" so two ankivoice runs never write the same
// collection at once. Reads cover the notes table and the note type metadata
// stored as JSON in the single-row col table. Writes are limited to the flds
// and mod columns of notes, applied in one transaction with an optimistic
// guard: an update only lands if the note still holds the field blob that was
// read during planning.
package collection
