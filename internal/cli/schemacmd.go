package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/capcheck/internal/report"
)

// NewSchemaCommand creates the schema command, which runs only the
// per-definition schema phase.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema [path]",
		Short: "Validate operation definitions against the capability schema",
		Long: `Check every operation definition against the capability schema:
required fields, enum membership, duration rules, and the optional
parameters, rollback, and validation sub-blocks. Dependency analysis
is skipped; use "deps" or "validate" for that.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultCatalogPath
			if len(args) == 1 {
				path = args[0]
			}
			return runSchema(rootOpts, path, cmd)
		},
	}
}

func runSchema(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	formatter.VerboseLog("Checked %d file(s) in %s", len(rep.Files), path)

	passed := rep.ViolationCount() == 0
	return outputReport(formatter, rep, passed, (*report.Report).RenderSchemaText)
}
