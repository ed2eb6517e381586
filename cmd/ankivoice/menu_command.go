package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const menuText = `
Anki Audio Annotator
1. Inspect collection structure
2. Add audio references to notes
3. Extract all audio references (including existing)
4. Generate audio files from text list
5. Add audio references and generate audio
6. Extract existing audio references and generate text file
`

func newMenuCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Choose an operation from the interactive menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, ctx)
		},
	}
}

// runMenu handles a single menu choice and returns.
func runMenu(cmd *cobra.Command, ctx *commandContext) error {
	out := cmd.OutOrStdout()
	in := ctx.stdin(cmd)

	fmt.Fprint(out, menuText)
	choice, err := readLine(in, out, "\nEnter your choice (1-6): ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return runInspect(cmd, ctx, false)
	case "2":
		return runAnnotate(cmd, ctx, annotateFlags{apply: true, mode: "menu_annotate"})
	case "3", "6":
		return runAnnotate(cmd, ctx, annotateFlags{apply: true, extract: true, writeList: true, mode: "menu_extract"})
	case "4":
		if err := ensureAPIKey(cmd, ctx); err != nil {
			return err
		}
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return err
		}
		listPath, err := readLine(in, out, fmt.Sprintf("Enter path to text file (default: %s): ", cfg.Paths.TaskList))
		if err != nil {
			return err
		}
		return runGenerate(cmd, ctx, listPath, false)
	case "5":
		return runAnnotate(cmd, ctx, annotateFlags{apply: true, generate: true, mode: "menu_generate"})
	default:
		fmt.Fprintln(out, "Invalid choice.")
		return nil
	}
}
