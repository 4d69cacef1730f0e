package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/arbiter/internal/harness"
	"github.com/roach88/arbiter/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Validator string
	Input     string
	Output    string
	Database  string
	Timeout   time.Duration
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a validator against one (input, output) pair",
		Long: `Load validator source into a fresh, isolated interpreter and invoke it
against one (input, output) pair. Emits exactly one verdict record
{satisfied, reason, violation} on stdout; the exit status carries the
overall pass/fail signal.

Text arguments starting with '@' are read from files.

A harness error (missing entry point, malformed contract, runtime fault,
timeout) is reported on stderr and exits with status 2. It is never
shaped like a verdict: only genuine validation failures carry a
reason/violation pair.

Example:
  arbiter check --validator validator.go --input @prompt.txt --output @response.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Validator, "validator", "", "path to validator source (required)")
	cmd.Flags().StringVar(&opts.Input, "input", "", "input text, or @file (required)")
	cmd.Flags().StringVar(&opts.Output, "output", "", "model output text, or @file (required)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "optional SQLite run log")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", harness.DefaultTimeout, "execution budget per invocation")
	_ = cmd.MarkFlagRequired("validator")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	source, err := os.ReadFile(opts.Validator)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read validator", err)
	}
	input, err := readTextArg(opts.Input)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	output, err := readTextArg(opts.Output)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read output", err)
	}

	runner := harness.New(harness.Options{
		Timeout: opts.Timeout,
		Logger:  slog.Default(),
	})

	start := time.Now()
	verdict, runErr := runner.Run(cmd.Context(), string(source), input, output)
	elapsed := time.Since(start)

	if opts.Database != "" {
		if err := recordRun(cmd, opts.Database, string(source), input, output, verdict, runErr, elapsed); err != nil {
			slog.Error("failed to record run", "error", err)
		}
	}

	if runErr != nil {
		// Harness errors stay diagnosable and are never rendered as
		// verdicts.
		return WrapExitError(ExitCommandError, "harness error", runErr)
	}

	record, err := verdict.MarshalRecord()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode verdict", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(record))

	if !verdict.Satisfied {
		return NewExitError(ExitFailure, "output violates constraints")
	}
	return nil
}

// recordRun appends one run record to the SQLite log.
func recordRun(cmd *cobra.Command, dbPath, source, input, output string, verdict *harness.Verdict, runErr error, elapsed time.Duration) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	hash := store.CaseHash(source, input, output)
	var rec store.RunRecord
	if runErr != nil {
		rec = store.NewErrorRecord(hash, "", "", runErr, elapsed)
	} else {
		rec = store.NewVerdictRecord(hash, "", "", verdict, elapsed)
	}
	return st.WriteRun(cmd.Context(), rec)
}
