package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/capcheck/internal/report"
	"github.com/roach88/capcheck/internal/store"
)

// DefaultCatalogPath is searched when no path argument is given.
const DefaultCatalogPath = "capabilities"

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var recordDB string

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate schema and dependency graph of an operation catalog",
		Long: `Run the full validation pipeline over a catalog path (file or
directory, default "capabilities"): per-definition schema checking,
missing-dependency detection, and cycle detection. The command fails
if any finding exists; the report enumerates every finding so the
catalog can be fixed in one pass.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // We handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultCatalogPath
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, recordDB, cmd)
		},
	}

	cmd.Flags().StringVar(&recordDB, "record", "",
		"append the run verdict to a SQLite history database at this path")

	return cmd
}

func runValidate(opts *RootOptions, path, recordDB string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	rep, err := BuildReport(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	formatter.VerboseLog("Loaded %d operation(s) from %s", rep.Stats.TotalOperations, path)

	if recordDB != "" {
		if err := recordRun(rep, recordDB); err != nil {
			return WrapExitError(ExitCommandError, "recording run", err)
		}
		formatter.VerboseLog("Recorded run in %s", recordDB)
	}

	return outputReport(formatter, rep, rep.Passed(), (*report.Report).RenderText)
}

// recordRun appends the report's verdict to the history database.
func recordRun(rep *report.Report, dbPath string) error {
	fingerprint, err := rep.Fingerprint()
	if err != nil {
		return err
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.RecordRun(context.Background(), store.Run{
		ID:               store.NewRunID(),
		CreatedAt:        time.Now(),
		Path:             rep.Path,
		TotalOperations:  rep.Stats.TotalOperations,
		SchemaViolations: rep.ViolationCount(),
		MissingDeps:      len(rep.Missing),
		Cycles:           len(rep.Cycles),
		Passed:           rep.Passed(),
		Fingerprint:      fingerprint,
	})
}

// outputLoadError renders a fatal load error and maps it to exit 1:
// a missing path or an empty catalog is a failed validation, not a
// command-usage problem.
func outputLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
		return WrapExitError(ExitFailure, loadErr.Message, nil)
	}
	_ = formatter.Error(ErrCodeScan, err.Error(), nil)
	return WrapExitError(ExitFailure, "loading catalog", err)
}

// outputReport renders the report in the configured format and converts
// the verdict into the command's return value.
func outputReport(formatter *OutputFormatter, rep *report.Report, passed bool,
	render func(*report.Report, io.Writer)) error {

	if formatter.Format == "json" {
		response := CLIResponse{Status: "ok", Data: rep}
		if !passed {
			response.Status = "error"
			response.Error = &CLIError{Code: "V001", Message: rep.Summary()}
		}
		enc := json.NewEncoder(formatter.Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(response); err != nil {
			return err
		}
	} else {
		render(rep, formatter.Writer)
	}

	if !passed {
		return NewExitError(ExitFailure, rep.Summary())
	}
	return nil
}
