package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/arbiter/internal/pipeline"
	"github.com/roach88/arbiter/internal/tree"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	OutDir string
}

// NewCompileCommand creates the compile command, running all three
// pipeline stages in sequence.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <prompt-file>",
		Short: "Run extraction, tree generation, and validator generation",
		Long: `Run the full pipeline for one prompt template: extract code-verifiable
constraints, compile them into a decision tree, and generate validator
source. Stage failures are localized - whatever artifacts were produced
are still written.

Example:
  arbiter compile ./prompt.txt --out-dir ./artifacts`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.OutDir, "out-dir", ".", "directory for pipeline artifacts")

	return cmd
}

func runCompile(opts *CompileOptions, promptArg string, cmd *cobra.Command) error {
	promptText, err := readPromptFile(promptArg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load prompt", err)
	}
	client, err := newOracleClient()
	if err != nil {
		return WrapExitError(ExitCommandError, "oracle not configured", err)
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return WrapExitError(ExitCommandError, "failed to create output directory", err)
	}

	p := pipeline.New(client, slog.Default())
	res := p.Run(cmd.Context(), promptText)

	out := cmd.OutOrStdout()
	if len(res.Constraints) > 0 {
		path := filepath.Join(opts.OutDir, "constraints.json")
		if err := writeJSON(path, res.Constraints); err != nil {
			return WrapExitError(ExitCommandError, "failed to write constraints", err)
		}
		fmt.Fprintf(out, "constraints: %s (%d)\n", path, len(res.Constraints))
	}
	if res.Tree != nil {
		data, err := tree.Encode(res.Tree)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to encode tree", err)
		}
		path := filepath.Join(opts.OutDir, "tree.json")
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return WrapExitError(ExitCommandError, "failed to write tree", err)
		}
		fmt.Fprintf(out, "tree: %s (%d nodes)\n", path, tree.CountNodes(res.Tree))
	}
	if res.ValidatorSource != "" {
		path := filepath.Join(opts.OutDir, "validator.go")
		if err := os.WriteFile(path, []byte(res.ValidatorSource), 0o644); err != nil {
			return WrapExitError(ExitCommandError, "failed to write validator", err)
		}
		fmt.Fprintf(out, "validator: %s\n", path)
	}

	if !res.Complete() {
		for _, stageErr := range res.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "stage error: %v\n", stageErr)
		}
		return NewExitError(ExitCommandError, "pipeline incomplete")
	}
	return nil
}
