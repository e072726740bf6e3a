package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/capcheck/internal/catalog"
	"github.com/roach88/capcheck/internal/depgraph"
	"github.com/roach88/capcheck/internal/report"
	"github.com/roach88/capcheck/internal/schema"
)

// Load error codes (L001-L099)
const (
	ErrCodeNotFound = "L001" // input path does not exist
	ErrCodeNoFiles  = "L002" // no operation files matched
	ErrCodeScan     = "L003" // error walking the directory
)

// LoadError represents a fatal catalog-level load failure: the path
// precondition, not a per-file problem.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadedFile is the outcome of reading and decoding one definition file.
type LoadedFile struct {
	Path    string
	Doc     map[string]any // nil when the file failed to load
	Err     error          // read or YAML decode failure
	Empty   bool           // decoded to an empty document
	Skipped bool           // no top-level "operation" key
}

// LoadResult holds every loaded file plus the operation records that
// made it into the graph phase, in file order.
type LoadResult struct {
	Files      []LoadedFile
	Operations []*catalog.Operation
	Warnings   []string
}

// LoadCatalog reads all operation definition files under path. A file
// path is used as-is; a directory is searched for the conventional
// <capability>/operations/*.yaml layout. Only the path precondition is
// fatal: per-file problems are recorded on the LoadedFile and the load
// continues.
func LoadCatalog(path string) (*LoadResult, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound,
			Message: fmt.Sprintf("path '%s' does not exist", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound,
			Message: fmt.Sprintf("error accessing path '%s': %v", path, err)}
	}

	var files []string
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*", "operations", "*.yaml"))
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScan,
				Message: fmt.Sprintf("error scanning '%s': %v", path, err)}
		}
		sort.Strings(files)
	} else {
		files = []string{path}
	}

	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles,
			Message: fmt.Sprintf("no operation files found in %s", path)}
	}

	result := &LoadResult{}
	for _, file := range files {
		loaded := loadFile(file)
		result.Files = append(result.Files, loaded)

		if loaded.Err != nil || loaded.Empty || loaded.Skipped {
			continue
		}

		op := catalog.ParseOperation(file, loaded.Doc)
		if op == nil {
			// "operation" key present but not a mapping; the schema
			// phase reports the missing required fields.
			continue
		}
		if op.ID == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s has no operation ID", file))
			continue
		}
		result.Operations = append(result.Operations, op)
	}

	return result, nil
}

func loadFile(path string) LoadedFile {
	loaded := LoadedFile{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		loaded.Err = fmt.Errorf("error reading file: %w", err)
		return loaded
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		loaded.Err = fmt.Errorf("YAML parsing error: %w", err)
		return loaded
	}

	if len(doc) == 0 {
		loaded.Empty = true
		return loaded
	}
	if _, ok := doc["operation"]; !ok {
		loaded.Skipped = true
		return loaded
	}

	loaded.Doc = doc
	return loaded
}

// FileResults runs the schema phase over the loaded files. Skipped
// files (no "operation" key) are omitted; load failures surface as a
// single violation on their file.
func (res *LoadResult) FileResults() []report.FileResult {
	var results []report.FileResult
	for _, f := range res.Files {
		if f.Skipped {
			continue
		}
		result := report.FileResult{File: f.Path}
		switch {
		case f.Err != nil:
			result.Violations = []schema.Violation{{
				Message: f.Err.Error(),
				Code:    schema.CodeParseError,
			}}
		case f.Empty:
			result.Violations = []schema.Violation{{
				Message: "Empty or invalid YAML file",
				Code:    schema.CodeEmptyFile,
			}}
		default:
			result.Violations = schema.Check(f.Doc)
		}
		results = append(results, result)
	}
	return results
}

// BuildReport runs the full pipeline over a catalog path: load, schema
// phase, graph construction, reference and cycle analysis, statistics.
func BuildReport(path string) (*report.Report, error) {
	res, err := LoadCatalog(path)
	if err != nil {
		return nil, err
	}

	graph := depgraph.Build(res.Operations)

	warnings := append([]string{}, res.Warnings...)
	for _, c := range graph.Collisions() {
		warnings = append(warnings, fmt.Sprintf(
			"duplicate operation id '%s': %s overrides %s", c.ID, c.File, c.ShadowedFile))
	}

	return &report.Report{
		Path:     path,
		Files:    res.FileResults(),
		Warnings: warnings,
		Missing:  graph.MissingDependencies(),
		Cycles:   graph.Cycles(),
		Stats:    graph.Stats(),
	}, nil
}
