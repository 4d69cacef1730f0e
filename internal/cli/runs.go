package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/arbiter/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded validation runs",
		Long: `List recent validation runs from the SQLite run log, newest first.
Harness errors are shown with their contract error code, distinct from
unsatisfied verdicts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run log (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open run log", err)
	}
	defer st.Close()

	records, err := st.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: out, Verbose: opts.Verbose}
		return f.Success(records)
	}

	for _, rec := range records {
		status := "ERROR"
		detail := rec.ErrorCode
		switch {
		case rec.Passing():
			status, detail = "PASS", ""
		case rec.Satisfied != nil:
			status, detail = "FAIL", rec.Reason
		}
		name := rec.CaseName
		if name == "" {
			name = rec.CaseHash[:12]
		}
		fmt.Fprintf(out, "%s  %-5s %-24s %s\n", rec.CreatedAt, status, name, detail)
	}
	return nil
}
