// Package main hosts the ankivoice CLI entrypoint and command graph.
//
// Run without arguments on a terminal, ankivoice shows the numbered operator
// menu. The subcommands expose the same operations for scripted use:
// inspecting the collection, planning and applying audio references,
// exporting and replaying the audio task list, and checking readiness.
//
// Keep this package lean: behaviour lives in internal/workflow; commands
// here parse flags, render output, and ask the operator for confirmation.
package main
