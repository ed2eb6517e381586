package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var listPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Synthesize MP3 files for every entry of a task list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureAPIKey(cmd, ctx); err != nil {
				return err
			}
			return runGenerate(cmd, ctx, listPath, jsonOutput)
		},
	}
	cmd.Flags().StringVar(&listPath, "list", "", "Task list path (defaults to paths.task_list)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the generation summary as JSON")
	return cmd
}

func runGenerate(cmd *cobra.Command, ctx *commandContext, listPath string, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	progressOut := out
	if jsonOutput {
		progressOut = cmd.ErrOrStderr()
	}
	runner, err := ctx.runner(progressOut)
	if err != nil {
		return err
	}
	list, err := runner.LoadList(listPath)
	if err != nil {
		return err
	}
	if len(list.Tasks) == 0 {
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), map[string]int{"total": 0})
		}
		fmt.Fprintf(out, "No audio tasks found in %s\n", runner.ListPath(listPath))
		return nil
	}
	summary, err := runner.Generate(ctx.operationContext(cmd, "generate"), list.Tasks)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), summary)
	}
	return nil
}
