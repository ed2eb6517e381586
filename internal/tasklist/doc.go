// Package tasklist reads and writes the plain-text audio task list that sits
// between annotation and audio generation.
//
// Each line holds one task as "<filename>|<sentence>". The file is meant to be
// edited by hand, so decoding is lenient: blank lines are skipped and lines
// without a separator are counted and dropped.
package tasklist
