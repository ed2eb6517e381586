// Package generate turns an audio task list into MP3 files in the Anki media
// folder.
//
// Generator walks tasks strictly in order: synthesize, write the file, report
// the outcome, then pause for the configured delay before the next request.
// A failed task is recorded and the batch moves on; only context
// cancellation or an unusable media directory stops a run early.
package generate
