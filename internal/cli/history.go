package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/capcheck/internal/store"
)

// NewHistoryCommand creates the history command, which lists recorded
// validation runs from a history database.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <db>",
		Short: "List recorded validation runs",
		Long: `List validation runs recorded with "validate --record", newest
first. Each entry shows the run id, time, catalog path, finding
totals, verdict, and report fingerprint.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, args[0], limit, cmd)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list (0 for all)")

	return cmd
}

func runHistory(opts *RootOptions, dbPath string, limit int, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	db, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error("S001", err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening history database", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(context.Background(), limit)
	if err != nil {
		_ = formatter.Error("S002", err.Error(), nil)
		return WrapExitError(ExitCommandError, "listing runs", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No recorded runs")
		return nil
	}

	for _, run := range runs {
		verdict := "fail"
		if run.Passed {
			verdict = "pass"
		}
		fmt.Fprintf(formatter.Writer, "%s  %s  %-4s  %s\n",
			run.CreatedAt.UTC().Format(time.RFC3339), run.ID, verdict, run.Path)
		fmt.Fprintf(formatter.Writer,
			"    operations=%d violations=%d missing=%d cycles=%d fingerprint=%.12s\n",
			run.TotalOperations, run.SchemaViolations, run.MissingDeps, run.Cycles,
			run.Fingerprint)
	}
	return nil
}
