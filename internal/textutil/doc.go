// Package textutil provides display helpers for console output: rune-safe
// truncation and single-line flattening of field values.
package textutil
