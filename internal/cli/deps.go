package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/capcheck/internal/report"
)

// NewDepsCommand creates the deps command, which runs only the
// dependency-graph phase.
func NewDepsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deps [path]",
		Short: "Validate the requires-graph of an operation catalog",
		Long: `Analyze the requires-relation of the loaded catalog: report every
dependency that references a non-existent operation and every circular
dependency chain, plus summary statistics. Schema violations do not
affect this command's verdict; use "schema" or "validate" for those.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultCatalogPath
			if len(args) == 1 {
				path = args[0]
			}
			return runDeps(rootOpts, path, cmd)
		},
	}
}

func runDeps(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	formatter.VerboseLog("Analyzing %d operation(s) from %s", rep.Stats.TotalOperations, path)

	passed := len(rep.Missing) == 0 && len(rep.Cycles) == 0
	return outputReport(formatter, rep, passed, (*report.Report).RenderDepsText)
}
