package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ankivoice/internal/services"
	"ankivoice/internal/workflow"
)

type annotateFlags struct {
	extract   bool
	apply     bool
	assumeYes bool
	writeList bool
	listPath  string
	generate  bool
	json      bool
	mode      string
}

func newAnnotateCommand(ctx *commandContext) *cobra.Command {
	flags := annotateFlags{mode: "annotate"}

	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Add [sound:...] references to sentence fields",
		Long: `Plans audio references for every note whose sentence field has none yet.

Without --apply nothing is written to the collection; the plan is printed
(and optionally exported or synthesized). With --apply the plan is shown and
committed after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.json && flags.apply && !flags.assumeYes {
				return errors.New("--json with --apply requires --yes")
			}
			return runAnnotate(cmd, ctx, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.extract, "extract", false, "Also list sentences that already reference audio")
	cmd.Flags().BoolVar(&flags.apply, "apply", false, "Commit the planned changes after confirmation")
	cmd.Flags().BoolVarP(&flags.assumeYes, "yes", "y", false, "Apply without asking")
	cmd.Flags().BoolVar(&flags.writeList, "write-list", false, "Write the audio task list")
	cmd.Flags().StringVar(&flags.listPath, "list", "", "Task list path (defaults to paths.task_list)")
	cmd.Flags().BoolVar(&flags.generate, "generate", false, "Synthesize audio for the planned tasks")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Emit JSON instead of text")
	return cmd
}

func runAnnotate(cmd *cobra.Command, ctx *commandContext, flags annotateFlags) error {
	out := cmd.OutOrStdout()
	progressOut := out
	if flags.json {
		progressOut = cmd.ErrOrStderr()
	}

	if flags.generate {
		if err := ensureAPIKey(cmd, ctx); err != nil {
			return err
		}
	}

	runner, err := ctx.runner(progressOut)
	if err != nil {
		return err
	}
	cfg := runner.Config()

	summarized := false
	req := workflow.AnnotateRequest{
		Extract:       flags.extract,
		WriteList:     flags.writeList,
		ListPath:      flags.listPath,
		GenerateAudio: flags.generate,
		Progress: func(processed int) {
			fmt.Fprintf(progressOut, "Processed %d notes...\n", processed)
		},
	}
	if flags.apply {
		confirmPlan := planConfirmer(ctx.stdin(cmd), progressOut, cfg.Annotation.FieldIndex, flags.assumeYes)
		req.Confirm = func(c context.Context, plan *workflow.Plan) (bool, error) {
			printPlanSummary(progressOut, plan)
			summarized = true
			return confirmPlan(c, plan)
		}
	} else if !flags.json {
		req.Confirm = func(_ context.Context, plan *workflow.Plan) (bool, error) {
			printPlanSummary(out, plan)
			printPlanPreview(out, plan, cfg.Annotation.FieldIndex)
			summarized = true
			return false, nil
		}
	}

	fmt.Fprintln(progressOut, "Analyzing notes for audio modification...")
	outcome, err := runner.Annotate(ctx.operationContext(cmd, flags.mode), req)
	if err != nil {
		return err
	}
	if flags.json {
		return writeJSON(cmd.OutOrStdout(), outcome)
	}
	if !summarized {
		printPlanSummary(out, outcome.Plan)
	}
	printAnnotateOutcome(out, outcome, flags)
	return nil
}

func printAnnotateOutcome(out io.Writer, outcome *workflow.AnnotateOutcome, flags annotateFlags) {
	plan := outcome.Plan
	switch {
	case outcome.Commit != nil:
		fmt.Fprintf(out, "Successfully updated %d notes!\n", outcome.Commit.Applied)
		if outcome.Commit.Backup != "" {
			fmt.Fprintf(out, "Backup written to %s\n", outcome.Commit.Backup)
		}
	case outcome.Declined && flags.apply:
		fmt.Fprintln(out, "No changes applied.")
	case outcome.Declined:
		fmt.Fprintln(out, "Dry run: no changes written. Re-run with --apply to update the collection.")
	}

	if outcome.ListEntries > 0 {
		fmt.Fprintf(out, "Generated text file: %s with %d entries\n", outcome.ListPath, outcome.ListEntries)
		fmt.Fprintln(out, "Use option 4 (or `ankivoice generate`) to generate audio from this file.")
	}

	if !flags.writeList && !flags.generate {
		if first, last, ok := plan.FilenameRange(); ok {
			fmt.Fprintf(out, "Audio files will be named: %s to %s\n", first, last)
		}
	}
}

// ensureAPIKey asks for an API key when none is configured. The answer only
// lives for this run.
func ensureAPIKey(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if cfg.RequireAPIKey() == nil {
		return nil
	}
	key, err := readLine(ctx.stdin(cmd), cmd.OutOrStdout(), "Please enter your ElevenLabs API key: ")
	if err != nil {
		return err
	}
	if key == "" {
		return services.Wrap(services.ErrConfiguration, "cli", "api key", "API key is required for audio generation", cfg.RequireAPIKey())
	}
	cfg.ElevenLabs.APIKey = key
	return nil
}
