package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/arbiter/internal/scoring"
)

// ScoreOptions holds flags for the score command.
type ScoreOptions struct {
	*RootOptions
	Gold   string
	Reason string
}

// NewScoreCommand creates the score command.
func NewScoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute BLEU between a gold label and a produced reason",
		Long: `Compute smoothed sentence-level BLEU for one (gold, reason) pair.
Prints the score only, for easy piping. Arguments starting with '@' are
read from files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Gold, "gold", "", "gold label text (required)")
	cmd.Flags().StringVar(&opts.Reason, "reason", "", "produced reason text (required)")
	_ = cmd.MarkFlagRequired("gold")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

func runScore(opts *ScoreOptions, cmd *cobra.Command) error {
	gold, err := readTextArg(opts.Gold)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read gold text", err)
	}
	reason, err := readTextArg(opts.Reason)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read reason text", err)
	}

	score := scoring.Score(gold, reason)
	fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", score)
	return nil
}
