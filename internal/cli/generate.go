package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/arbiter/internal/pipeline"
	"github.com/roach88/arbiter/internal/tree"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Tree string
	Out  string
}

// NewGenerateCommand creates the generate command (pipeline stage 3).
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <prompt-file>",
		Short: "Compile a decision tree into validator source",
		Long: `Compile a decision tree into Go validator source via the oracle. The
generated source defines IsValidOutput(output, input string)
(bool, string, string) and is run by the check command.

Example:
  arbiter generate ./prompt.txt --tree tree.json --out validator.go`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Tree, "tree", "", "path to decision tree JSON (required)")
	cmd.Flags().StringVar(&opts.Out, "out", "validator.go", "output file for validator source")
	_ = cmd.MarkFlagRequired("tree")

	return cmd
}

func runGenerate(opts *GenerateOptions, promptArg string, cmd *cobra.Command) error {
	promptText, err := readPromptFile(promptArg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load prompt", err)
	}
	root, err := tree.LoadFile(opts.Tree)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load tree", err)
	}

	client, err := newOracleClient()
	if err != nil {
		return WrapExitError(ExitCommandError, "oracle not configured", err)
	}

	p := pipeline.New(client, slog.Default())
	source, err := p.GenerateValidator(cmd.Context(), promptText, root)
	if err != nil {
		return WrapExitError(ExitCommandError, "validator generation failed", err)
	}

	if err := os.WriteFile(opts.Out, []byte(source), 0o644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write validator", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote validator source to %s\n", opts.Out)
	return nil
}
