// Package elevenlabs talks to the ElevenLabs text-to-speech HTTP API.
//
// Client covers the two endpoints the annotator needs: listing voices so a
// configured voice name can be resolved to an id, and synthesizing one text
// string to MP3 bytes. Requests are never retried; callers decide how a
// failure affects the rest of a batch. Failures are classified so the batch
// report can print the numeric codes operators are used to (see ErrorCode).
package elevenlabs
