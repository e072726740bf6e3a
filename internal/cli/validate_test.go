package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with the given args and returns the
// captured stdout, stderr, and the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestValidateCommand_FindingsFail(t *testing.T) {
	out, _, err := execute(t, "validate", "testdata/catalog")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ Missing Dependencies Found:")
	assert.Contains(t, out, "Missing dependency: ghost-op")
	assert.Contains(t, out, "✓ No circular dependencies detected")
	assert.Contains(t, out, "Total operations:           3")
}

func TestValidateCommand_CleanCatalogPasses(t *testing.T) {
	out, _, err := execute(t, "validate",
		"testdata/catalog/networking/operations/net-create.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "✓ testdata/catalog/networking/operations/net-create.yaml")
	assert.Contains(t, out, "✓ All dependencies reference existing operations")
}

func TestValidateCommand_PathDoesNotExist(t *testing.T) {
	out, _, err := execute(t, "validate", "no/such/path")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "does not exist")
	assert.NotContains(t, out, "Dependency Statistics", "no report body after a path error")
}

func TestValidateCommand_JSONOutput(t *testing.T) {
	out, _, err := execute(t, "validate", "--format", "json", "testdata/catalog")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var response struct {
		Status string `json:"status"`
		Data   struct {
			Missing []struct {
				Operation string `json:"operation"`
				Missing   string `json:"missing"`
			} `json:"missing_dependencies"`
			Stats struct {
				TotalOperations int `json:"total_operations"`
			} `json:"stats"`
		} `json:"data"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))

	assert.Equal(t, "error", response.Status)
	assert.Equal(t, 3, response.Data.Stats.TotalOperations)
	require.Len(t, response.Data.Missing, 1)
	assert.Equal(t, "ghost-op", response.Data.Missing[0].Missing)
	require.NotNil(t, response.Error)
	assert.Contains(t, response.Error.Message, "missing dependenc")
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "validate", "--format", "xml", "testdata/catalog")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

// Schema violations alone do not fail the deps command, and missing
// dependencies alone do not fail the schema command.
func TestSchemaAndDepsCommands_IndependentVerdicts(t *testing.T) {
	out, _, err := execute(t, "schema", "testdata/catalog")
	require.NoError(t, err, "catalog is schema-clean despite the dangling reference")
	assert.Contains(t, out, "✓ All operations comply with schema")
	assert.Contains(t, out, "  Passed: 3")

	out, _, err = execute(t, "deps", "testdata/catalog")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Missing dependency: ghost-op")
}

func TestSchemaCommand_ReportsViolations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "networking/operations/bad.yaml",
		"operation:\n  id: bad-op\n  capability: bogus\n")

	out, _, err := execute(t, "schema", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Invalid capability: 'bogus'")
	assert.Contains(t, out, "  - Missing required field: operation.name")
	assert.Contains(t, out, "  Failed: 1")
}

func TestValidateCommand_RecordAndHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	_, _, err := execute(t, "validate", "--record", dbPath, "testdata/catalog")
	require.Error(t, err, "findings still fail the run after recording")
	_, _, err = execute(t, "validate", "--record", dbPath, "testdata/catalog")
	require.Error(t, err)

	out, _, err := execute(t, "history", "--format", "json", dbPath)
	require.NoError(t, err)

	var response struct {
		Status string `json:"status"`
		Data   []struct {
			Passed      bool   `json:"passed"`
			Fingerprint string `json:"fingerprint"`
			Path        string `json:"path"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))

	assert.Equal(t, "ok", response.Status)
	require.Len(t, response.Data, 2)
	assert.False(t, response.Data[0].Passed)
	assert.Equal(t, response.Data[0].Fingerprint, response.Data[1].Fingerprint,
		"unchanged input yields identical fingerprints")
}

func TestHistoryCommand_EmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	out, _, err := execute(t, "history", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No recorded runs")
}
