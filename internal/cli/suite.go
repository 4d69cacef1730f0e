package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/arbiter/internal/harness"
	"github.com/roach88/arbiter/internal/store"
)

// SuiteOptions holds flags for the suite command.
type SuiteOptions struct {
	*RootOptions
	Jobs     int
	Database string
	Timeout  time.Duration
}

// NewSuiteCommand creates the suite command.
func NewSuiteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SuiteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "suite <suite-file>",
		Short: "Run a YAML suite of validation cases",
		Long: `Run every case of a YAML suite. Cases are independent and fan out
across workers; each gets its own isolated interpreter, so no case
observes state left by another.

Example:
  arbiter suite ./cases.yaml --jobs 4 --db runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Jobs, "jobs", 1, "concurrent workers")
	cmd.Flags().StringVar(&opts.Database, "db", "", "optional SQLite run log")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", harness.DefaultTimeout, "execution budget per invocation")

	return cmd
}

func runSuite(opts *SuiteOptions, path string, cmd *cobra.Command) error {
	suite, err := harness.LoadSuite(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load suite", err)
	}

	runner := harness.New(harness.Options{
		Timeout: opts.Timeout,
		Logger:  slog.Default(),
	})

	results, err := runner.RunSuite(cmd.Context(), suite, opts.Jobs)
	if err != nil {
		return WrapExitError(ExitCommandError, "suite run aborted", err)
	}

	if opts.Database != "" {
		if err := recordSuite(opts, suite, results, cmd); err != nil {
			slog.Error("failed to record suite runs", "error", err)
		}
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: out, Verbose: opts.Verbose}
		if err := f.Success(results); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode results", err)
		}
	}

	failed := 0
	for _, res := range results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
			failed++
		}
		if opts.Format != "json" {
			detail := ""
			switch {
			case res.Err != nil:
				detail = fmt.Sprintf(" (harness: %v)", res.Err)
			case res.Verdict != nil && res.Verdict.Reason != nil:
				detail = fmt.Sprintf(" (%s)", *res.Verdict.Reason)
			}
			fmt.Fprintf(out, "%-4s %s%s\n", status, res.Name, detail)
		}
	}

	if opts.Format != "json" {
		fmt.Fprintf(out, "\n%d/%d cases passed\n", len(results)-failed, len(results))
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d cases failed", failed, len(results)))
	}
	return nil
}

func recordSuite(opts *SuiteOptions, suite *harness.Suite, results []harness.CaseResult, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, res := range results {
		// Per-case sources are not re-read here; the hash covers the
		// case identity within the suite.
		hash := store.CaseHash(suite.Name, res.Name, "")
		var rec store.RunRecord
		if res.Err != nil {
			rec = store.NewErrorRecord(hash, suite.Name, res.Name, res.Err, res.Elapsed)
		} else {
			rec = store.NewVerdictRecord(hash, suite.Name, res.Name, res.Verdict, res.Elapsed)
		}
		if err := st.WriteRun(cmd.Context(), rec); err != nil {
			return err
		}
	}
	return nil
}
