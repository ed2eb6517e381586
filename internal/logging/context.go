package logging

import (
	"context"
	"log/slog"

	"ankivoice/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for one CLI invocation.
	FieldRunID = "run_id"
	// FieldNoteID is the standardized structured logging key for Anki note identifiers.
	FieldNoteID = "note_id"
	// FieldFile is the standardized structured logging key for audio file names.
	FieldFile = "file"
	// FieldTaskIndex is the 1-based index of an audio task within a batch.
	FieldTaskIndex = "task_index"
	// FieldTaskCount is the number of audio tasks in a batch.
	FieldTaskCount = "task_count"
	// FieldErrorCode carries the numeric synthesis failure code.
	FieldErrorCode = "error_code"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if mode, ok := services.ModeFromContext(ctx); ok {
		fields = append(fields, slog.String("mode", mode))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
