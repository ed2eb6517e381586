// Package annotate decides which notes need an audio reference in their
// sentence field and produces both the field rewrites and the audio tasks
// needed to back them.
//
// Annotate is pure: it reads a slice of notes and returns a Plan. Applying the
// plan to the collection and synthesizing the audio are separate steps so the
// operator can review the plan first.
package annotate
