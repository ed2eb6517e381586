package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ankivoice/internal/textutil"
	"ankivoice/internal/workflow"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show note types, note count, and sample notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, ctx, jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of tables")
	return cmd
}

func runInspect(cmd *cobra.Command, ctx *commandContext, jsonOutput bool) error {
	runner, err := ctx.runner(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	inspection, err := runner.Inspect(ctx.operationContext(cmd, "inspect"))
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), inspection)
	}
	printInspection(cmd.OutOrStdout(), inspection, shouldColorize(cmd.OutOrStdout()))
	return nil
}

func printInspection(out io.Writer, inspection *workflow.Inspection, colorize bool) {
	fmt.Fprintln(out, sectionHeader("Note types (models)", colorize))
	if len(inspection.NoteTypes) == 0 {
		fmt.Fprintln(out, "No note types found in col.models")
	}
	for _, noteType := range inspection.NoteTypes {
		fmt.Fprintf(out, "\nModel ID: %s\nName: %s\n", noteType.ID, noteType.Name)
		rows := make([][]string, 0, len(noteType.Fields))
		for i, name := range noteType.Fields {
			rows = append(rows, []string{strconv.Itoa(i), name})
		}
		fmt.Fprintln(out, renderTable([]string{"#", "Field"}, rows))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, sectionHeader("Statistics", colorize))
	fmt.Fprintf(out, "Total notes: %d\n", inspection.NoteCount)

	fmt.Fprintln(out)
	fmt.Fprintln(out, sectionHeader("Sample notes", colorize))
	for _, note := range inspection.Samples {
		fmt.Fprintf(out, "\nNote ID: %d\nModel ID: %d\nTags: '%s'\n", note.ID, note.ModelID, strings.TrimSpace(note.Tags))
		rows := make([][]string, 0, len(note.Fields))
		for i, value := range note.Fields {
			rows = append(rows, []string{strconv.Itoa(i), textutil.OneLine(value)})
		}
		fmt.Fprintln(out, renderTable([]string{"#", "Value"}, rows))
	}
}
