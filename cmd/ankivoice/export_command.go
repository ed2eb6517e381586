package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ankivoice/internal/workflow"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var listPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the audio task list without changing the collection",
		Long: `Plans annotations with extraction enabled and writes every pending and
existing audio reference to the task list as "filename|sentence" lines.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := annotateFlags{
				extract:   true,
				writeList: true,
				listPath:  listPath,
				json:      jsonOutput,
				mode:      "export",
			}
			return runExport(cmd, ctx, flags)
		},
	}
	cmd.Flags().StringVar(&listPath, "list", "", "Task list path (defaults to paths.task_list)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}

func runExport(cmd *cobra.Command, ctx *commandContext, flags annotateFlags) error {
	out := cmd.OutOrStdout()
	runner, err := ctx.runner(out)
	if err != nil {
		return err
	}
	outcome, err := runner.Annotate(ctx.operationContext(cmd, flags.mode), workflow.AnnotateRequest{
		Extract:   true,
		WriteList: true,
		ListPath:  flags.listPath,
	})
	if err != nil {
		return err
	}
	if flags.json {
		return writeJSON(cmd.OutOrStdout(), outcome)
	}
	printPlanSummary(out, outcome.Plan)
	if outcome.ListEntries == 0 {
		fmt.Fprintln(out, "No audio entries found; task list not written.")
		return nil
	}
	fmt.Fprintf(out, "Generated text file: %s with %d entries\n", outcome.ListPath, outcome.ListEntries)
	return nil
}
