// Package report aggregates schema, reference, and cycle findings into
// a single verdict and renders it for humans and machines.
package report

import (
	"github.com/roach88/capcheck/internal/depgraph"
	"github.com/roach88/capcheck/internal/schema"
)

// FileResult holds the schema outcome for one definition file.
type FileResult struct {
	File       string             `json:"file"`
	Violations []schema.Violation `json:"violations,omitempty"`
}

// Passed reports whether the file had no violations.
func (f FileResult) Passed() bool {
	return len(f.Violations) == 0
}

// Report is the aggregated outcome of one validation run.
// Warnings (missing ids, duplicate ids) are informational and never
// affect the verdict.
type Report struct {
	Path     string                       `json:"path"`
	Files    []FileResult                 `json:"files"`
	Warnings []string                     `json:"warnings,omitempty"`
	Missing  []depgraph.MissingDependency `json:"missing_dependencies,omitempty"`
	Cycles   []depgraph.Cycle             `json:"cycles,omitempty"`
	Stats    depgraph.Stats               `json:"stats"`
}

// Passed reports the overall verdict: pass iff there are zero schema
// violations, zero missing dependencies, and zero cycles.
func (r *Report) Passed() bool {
	return r.ViolationCount() == 0 && len(r.Missing) == 0 && len(r.Cycles) == 0
}

// ViolationCount returns the total number of schema violations across
// all files.
func (r *Report) ViolationCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Violations)
	}
	return n
}

// FailedFiles returns how many files carry at least one violation.
func (r *Report) FailedFiles() int {
	n := 0
	for _, f := range r.Files {
		if !f.Passed() {
			n++
		}
	}
	return n
}
