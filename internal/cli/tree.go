package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/arbiter/internal/pipeline"
	"github.com/roach88/arbiter/internal/tree"
)

// NewTreeCommand creates the tree command group.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Generate, validate, and print constraint decision trees",
	}

	cmd.AddCommand(newTreeGenerateCommand(rootOpts))
	cmd.AddCommand(newTreeValidateCommand(rootOpts))
	cmd.AddCommand(newTreePrintCommand(rootOpts))

	return cmd
}

// TreeGenerateOptions holds flags for tree generate.
type TreeGenerateOptions struct {
	*RootOptions
	Constraints string
	Out         string
}

func newTreeGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TreeGenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <prompt-file>",
		Short: "Compile a constraint list into a decision tree",
		Long: `Compile extracted constraints into a decision tree via the oracle
(pipeline stage 2). The generated tree is schema-checked and validated
for well-formedness before it is accepted; ordering-contract violations
are logged as warnings.

Example:
  arbiter tree generate ./prompt.txt --constraints constraints.json --out tree.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTreeGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Constraints, "constraints", "", "path to extracted constraints JSON (required)")
	cmd.Flags().StringVar(&opts.Out, "out", "tree.json", "output file for the decision tree")
	_ = cmd.MarkFlagRequired("constraints")

	return cmd
}

func runTreeGenerate(opts *TreeGenerateOptions, promptArg string, cmd *cobra.Command) error {
	promptText, err := readPromptFile(promptArg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load prompt", err)
	}
	constraints, err := loadConstraints(opts.Constraints)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load constraints", err)
	}
	if len(constraints) == 0 {
		return NewExitError(ExitCommandError, "constraint list is empty, nothing to compile")
	}

	client, err := newOracleClient()
	if err != nil {
		return WrapExitError(ExitCommandError, "oracle not configured", err)
	}

	p := pipeline.New(client, slog.Default())
	root, err := p.BuildTree(cmd.Context(), promptText, constraints)
	if err != nil {
		return WrapExitError(ExitCommandError, "tree generation failed", err)
	}

	data, err := tree.Encode(root)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode tree", err)
	}
	if err := os.WriteFile(opts.Out, append(data, '\n'), 0o644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write tree", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote decision tree (%d nodes) to %s\n", tree.CountNodes(root), opts.Out)
	if opts.Verbose {
		tree.Print(cmd.OutOrStdout(), root)
	}
	return nil
}

func newTreeValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <tree-file>",
		Short: "Check a tree file for schema, well-formedness, and ordering",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTreeValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runTreeValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	root, err := tree.LoadFile(path)
	if err != nil {
		return WrapExitError(ExitFailure, "tree is not well-formed", err)
	}

	violations := tree.CheckOrdering(root)
	for _, v := range violations {
		fmt.Fprintf(cmd.OutOrStdout(), "ordering: %s\n", v.Error())
	}
	if len(violations) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("tree violates the ordering contract (%d findings)", len(violations)))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Tree is well-formed: %d nodes, depth %d\n", tree.CountNodes(root), tree.Depth(root))
	return nil
}

func newTreePrintCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print <tree-file>",
		Short: "Render a tree file as an indented diagram",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := tree.LoadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load tree", err)
			}
			tree.Print(cmd.OutOrStdout(), root)
			return nil
		},
	}
	return cmd
}
