package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"ankivoice/internal/annotate"
	"ankivoice/internal/workflow"
)

const previewLimit = 5

func printPlanSummary(out io.Writer, plan *workflow.Plan) {
	fmt.Fprintf(out, "\nFound %d notes to update with audio references\n", len(plan.Updates))
	fmt.Fprintf(out, "Found %d total audio entries (including existing)\n", len(plan.Tasks))
	counts := plan.Counts
	fmt.Fprintf(out, "Scanned %d notes: %d skipped, %d already had audio\n", counts.Scanned, counts.Skipped, counts.Existing)
}

// printPlanPreview shows the sentence field of the first few updates.
func printPlanPreview(out io.Writer, plan *workflow.Plan, fieldIndex int) {
	if len(plan.Updates) == 0 {
		return
	}
	fmt.Fprintln(out, "Sample modifications:")
	limit := min(previewLimit, len(plan.Updates))
	rows := make([][]string, 0, limit)
	for _, update := range plan.Updates[:limit] {
		rows = append(rows, []string{
			fmt.Sprintf("%d", update.NoteID),
			annotate.SentenceAt(update.Original, fieldIndex),
			annotate.SentenceAt(update.Updated, fieldIndex),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Note", "Sentence (original)", "Sentence (modified)"}, rows))
}

func planConfirmer(in *bufio.Reader, out io.Writer, fieldIndex int, assumeYes bool) workflow.Confirmer {
	return func(_ context.Context, plan *workflow.Plan) (bool, error) {
		printPlanPreview(out, plan, fieldIndex)
		if assumeYes {
			return true, nil
		}
		return confirm(in, out, fmt.Sprintf("\nDo you want to apply these changes to %d notes?", len(plan.Updates)))
	}
}
