// Package preflight provides readiness checks for the files and the speech
// provider that ankivoice depends on.
//
// The CLI "ankivoice status" command runs RunAll and renders each Result.
// Provider checks only run when an API key is configured, so the command
// stays useful offline.
package preflight
