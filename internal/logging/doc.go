// Package logging assembles structured slog loggers used across ankivoice.
//
// It owns the console and JSON handlers, level parsing, and output routing
// (stderr plus an optional log file), and exposes context-aware helpers so
// workflow code can tag every line with the run identifier and the operator
// mode. A no-op logger is provided for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
