// Package fields encodes and decodes the field blob Anki stores per note and
// manipulates the inline [sound:...] markers that reference audio files.
//
// A note keeps all of its field values in one text column joined by the ASCII
// unit separator (0x1F). Split and Join are exact inverses for field values
// that do not themselves contain the separator; empty leading and trailing
// fields are preserved. The package performs no I/O.
package fields
