// Package config loads, normalizes, and validates ankivoice configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ELEVEN_LABS_API_KEY. The Config type centralizes every knob the CLI needs:
// where the Anki collection and media folder live, how the ElevenLabs voice is
// shaped, and how sentence fields are annotated.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
