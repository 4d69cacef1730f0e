package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/arbiter/internal/pipeline"
)

// ExtractOptions holds flags for the extract command.
type ExtractOptions struct {
	*RootOptions
	Out     string
	SaveRaw string
}

// NewExtractCommand creates the extract command (pipeline stage 1).
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExtractOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "extract <prompt-file>",
		Short: "Extract code-verifiable constraints from a prompt template",
		Long: `Extract all output constraints from a prompt template via the oracle,
keeping only those checkable by code: format, numerical, lexical matching,
and lexical exclusion constraints, plus conditional constraints whose
trigger the oracle judges verifiable from the raw input.

An oracle failure yields an empty constraint list and a non-zero exit,
never a crash.

Example:
  arbiter extract ./prompt.txt --out constraints.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "constraints.json", "output file for filtered constraints")
	cmd.Flags().StringVar(&opts.SaveRaw, "save-raw", "", "optional file for raw (unfiltered) constraints")

	return cmd
}

func runExtract(opts *ExtractOptions, promptArg string, cmd *cobra.Command) error {
	promptText, err := readPromptFile(promptArg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load prompt", err)
	}

	client, err := newOracleClient()
	if err != nil {
		return WrapExitError(ExitCommandError, "oracle not configured", err)
	}

	ctx := cmd.Context()
	if opts.SaveRaw != "" {
		raw, err := client.ExtractConstraints(ctx, promptText)
		if err != nil {
			return WrapExitError(ExitCommandError, "constraint extraction failed", err)
		}
		if err := writeJSON(opts.SaveRaw, raw); err != nil {
			return WrapExitError(ExitCommandError, "failed to write raw constraints", err)
		}
		slog.Info("raw constraints saved", "path", opts.SaveRaw, "count", len(raw))
	}

	p := pipeline.New(client, slog.Default())
	constraints, err := p.Extract(ctx, promptText)
	if err != nil {
		return WrapExitError(ExitCommandError, "constraint extraction failed", err)
	}

	if err := writeJSON(opts.Out, constraints); err != nil {
		return WrapExitError(ExitCommandError, "failed to write constraints", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d code-verifiable constraints to %s\n", len(constraints), opts.Out)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
