// Package workflow composes the collection store, the annotator, the task
// list, and the audio generator into the operations the CLI exposes.
//
// Mutating the collection is split into two phases. Plan reads every note and
// computes the rewrites without touching the database; Commit applies a plan
// in one guarded transaction. Callers show the plan to the operator in
// between and only commit on confirmation. Annotate strings the phases
// together for the interactive modes, including the text list export and
// audio generation that follow regardless of the operator's answer.
package workflow
