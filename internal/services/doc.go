// Package services defines shared utilities consumed by the workflow and the
// external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and operator modes for
//     logging.
//   - Structured error markers plus the Wrap helper that sort failures into
//     the operator-facing taxonomy (missing resource, provider, malformed
//     input, declined, configuration).
//
// Use these helpers when wiring new components so error handling and
// observability stay uniform.
package services
