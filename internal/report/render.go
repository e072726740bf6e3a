package report

import (
	"fmt"
	"io"
	"strings"
)

const rule = "======================================================================"

func header(w io.Writer, title string) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

// RenderText writes the full human-readable report: per-file schema
// status, load warnings, missing dependencies, cycles, and statistics.
func (r *Report) RenderText(w io.Writer) {
	header(w, "Operation Catalog Validation")

	r.renderFiles(w)
	r.renderWarnings(w)
	r.renderMissing(w)
	r.renderCycles(w)
	r.renderStats(w)
}

// RenderSchemaText writes the schema-only report with a pass/fail
// summary per file and overall totals.
func (r *Report) RenderSchemaText(w io.Writer) {
	header(w, "Schema Validation Report")

	r.renderFiles(w)

	header(w, "Schema Validation Summary")
	fmt.Fprintf(w, "  Total:  %d\n", len(r.Files))
	fmt.Fprintf(w, "  Passed: %d\n", len(r.Files)-r.FailedFiles())
	fmt.Fprintf(w, "  Failed: %d\n", r.FailedFiles())
	fmt.Fprintln(w)

	if r.FailedFiles() > 0 {
		fmt.Fprintln(w, "Failed files:")
		for _, f := range r.Files {
			if !f.Passed() {
				fmt.Fprintf(w, "  - %s (%d error(s))\n", f.File, len(f.Violations))
			}
		}
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, "✓ All operations comply with schema")
}

// RenderDepsText writes the dependency-only report: missing references,
// cycles, and statistics.
func (r *Report) RenderDepsText(w io.Writer) {
	header(w, "Dependency Validation")

	fmt.Fprintf(w, "Loaded %d operations\n", r.Stats.TotalOperations)
	fmt.Fprintln(w)

	r.renderWarnings(w)
	r.renderMissing(w)
	r.renderCycles(w)
	r.renderStats(w)
}

func (r *Report) renderFiles(w io.Writer) {
	for _, f := range r.Files {
		if f.Passed() {
			fmt.Fprintf(w, "✓ %s\n", f.File)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", f.File)
		for _, v := range f.Violations {
			fmt.Fprintf(w, "  - %s\n", v.Message)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func (r *Report) renderWarnings(w io.Writer) {
	if len(r.Warnings) == 0 {
		return
	}
	fmt.Fprintln(w, "Warnings:")
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "  - %s\n", warning)
	}
	fmt.Fprintln(w)
}

func (r *Report) renderMissing(w io.Writer) {
	if len(r.Missing) == 0 {
		fmt.Fprintln(w, "✓ All dependencies reference existing operations")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, "✗ Missing Dependencies Found:")
	fmt.Fprintln(w)
	for _, m := range r.Missing {
		fmt.Fprintf(w, "  Operation: %s\n", m.Operation)
		fmt.Fprintf(w, "  File: %s\n", m.File)
		fmt.Fprintf(w, "  Missing dependency: %s\n", m.Missing)
		fmt.Fprintln(w)
	}
}

func (r *Report) renderCycles(w io.Writer) {
	if len(r.Cycles) == 0 {
		fmt.Fprintln(w, "✓ No circular dependencies detected")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, "✗ Circular Dependencies Found:")
	fmt.Fprintln(w)
	for i, c := range r.Cycles {
		fmt.Fprintf(w, "  Cycle %d: %s\n", i+1, c.String())
	}
	fmt.Fprintln(w)
}

func (r *Report) renderStats(w io.Writer) {
	header(w, "Dependency Statistics")
	fmt.Fprintf(w, "  Total operations:           %d\n", r.Stats.TotalOperations)
	fmt.Fprintf(w, "  Operations with deps:       %d\n", r.Stats.WithDependencies)
	fmt.Fprintf(w, "  Total dependencies:         %d\n", r.Stats.TotalDependencies)
	fmt.Fprintf(w, "  Max dependencies per op:    %d\n", r.Stats.MaxDependencies)
	if r.Stats.MostDependent != "" {
		fmt.Fprintf(w, "  Most dependent operation:   %s\n", r.Stats.MostDependent)
	}
	fmt.Fprintln(w)
}

// Summary returns a one-line verdict suitable for logs.
func (r *Report) Summary() string {
	if r.Passed() {
		return fmt.Sprintf("pass: %d operations, 0 findings", r.Stats.TotalOperations)
	}
	parts := []string{}
	if n := r.ViolationCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d schema violation(s)", n))
	}
	if n := len(r.Missing); n > 0 {
		parts = append(parts, fmt.Sprintf("%d missing dependenc(ies)", n))
	}
	if n := len(r.Cycles); n > 0 {
		parts = append(parts, fmt.Sprintf("%d cycle(s)", n))
	}
	return "fail: " + strings.Join(parts, ", ")
}
