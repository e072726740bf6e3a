package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/capcheck/internal/depgraph"
	"github.com/roach88/capcheck/internal/schema"
)

func sampleReport() *Report {
	return &Report{
		Path: "capabilities",
		Files: []FileResult{
			{File: "capabilities/networking/operations/net-create.yaml"},
			{File: "capabilities/networking/operations/net-delete.yaml", Violations: []schema.Violation{
				{Path: "operation.id", Message: "Missing required field: operation.id", Code: schema.CodeMissingField},
			}},
		},
		Warnings: []string{"capabilities/networking/operations/stub.yaml has no operation ID"},
		Missing: []depgraph.MissingDependency{
			{Operation: "net-delete", Missing: "ghost-op", File: "capabilities/networking/operations/net-delete.yaml"},
		},
		Cycles: []depgraph.Cycle{{Path: []string{"a", "b", "a"}}},
		Stats: depgraph.Stats{
			TotalOperations:   2,
			WithDependencies:  1,
			TotalDependencies: 2,
			MaxDependencies:   2,
			MostDependent:     "net-delete",
		},
	}
}

func TestReport_Verdict(t *testing.T) {
	rep := sampleReport()
	assert.False(t, rep.Passed())
	assert.Equal(t, 1, rep.ViolationCount())
	assert.Equal(t, 1, rep.FailedFiles())

	clean := &Report{Files: []FileResult{{File: "a.yaml"}}}
	assert.True(t, clean.Passed())
}

func TestReport_VerdictFailsOnAnyFindingClass(t *testing.T) {
	cases := []struct {
		name string
		rep  Report
	}{
		{"schema violation", Report{Files: []FileResult{{
			File:       "a.yaml",
			Violations: []schema.Violation{{Message: "x", Code: schema.CodeMissingField}},
		}}}},
		{"missing dependency", Report{Missing: []depgraph.MissingDependency{{Operation: "a", Missing: "b"}}}},
		{"cycle", Report{Cycles: []depgraph.Cycle{{Path: []string{"a", "a"}}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, tc.rep.Passed())
		})
	}
}

func TestRenderText_Sections(t *testing.T) {
	var buf bytes.Buffer
	sampleReport().RenderText(&buf)
	out := buf.String()

	assert.Contains(t, out, "Operation Catalog Validation")
	assert.Contains(t, out, "✓ capabilities/networking/operations/net-create.yaml")
	assert.Contains(t, out, "✗ capabilities/networking/operations/net-delete.yaml")
	assert.Contains(t, out, "  - Missing required field: operation.id")
	assert.Contains(t, out, "Warnings:")
	assert.Contains(t, out, "Missing dependency: ghost-op")
	assert.Contains(t, out, "Cycle 1: a -> b -> a")
	assert.Contains(t, out, "Total operations:           2")
	assert.Contains(t, out, "Most dependent operation:   net-delete")
}

func TestRenderText_CleanCatalog(t *testing.T) {
	rep := &Report{
		Files: []FileResult{{File: "a.yaml"}},
		Stats: depgraph.Stats{TotalOperations: 1},
	}

	var buf bytes.Buffer
	rep.RenderText(&buf)
	out := buf.String()

	assert.Contains(t, out, "✓ All dependencies reference existing operations")
	assert.Contains(t, out, "✓ No circular dependencies detected")
	assert.NotContains(t, out, "Warnings:")
	assert.NotContains(t, out, "Most dependent operation")
}

func TestRenderSchemaText_Summary(t *testing.T) {
	var buf bytes.Buffer
	sampleReport().RenderSchemaText(&buf)
	out := buf.String()

	assert.Contains(t, out, "Schema Validation Report")
	assert.Contains(t, out, "  Total:  2")
	assert.Contains(t, out, "  Passed: 1")
	assert.Contains(t, out, "  Failed: 1")
	assert.Contains(t, out, "  - capabilities/networking/operations/net-delete.yaml (1 error(s))")
	assert.NotContains(t, out, "All operations comply")
}

func TestSummary(t *testing.T) {
	assert.Equal(t,
		"fail: 1 schema violation(s), 1 missing dependenc(ies), 1 cycle(s)",
		sampleReport().Summary())

	clean := &Report{Stats: depgraph.Stats{TotalOperations: 3}}
	assert.Equal(t, "pass: 3 operations, 0 findings", clean.Summary())
}

func TestMarshalCanonical_SortsKeysAndSkipsHTMLEscaping(t *testing.T) {
	b, err := MarshalCanonical(map[string]any{
		"b": "x -> y",
		"a": int64(1),
		"c": []any{true, "z"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":"x -> y","c":[true,"z"]}`, string(b))
}

func TestMarshalCanonical_RejectsNullAndFloats(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"a": nil})
	require.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"a": 1.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestFingerprint_Idempotent(t *testing.T) {
	first, err := sampleReport().Fingerprint()
	require.NoError(t, err)
	second, err := sampleReport().Fingerprint()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64, "hex-encoded SHA-256")
}

func TestFingerprint_ChangesWithFindings(t *testing.T) {
	base, err := sampleReport().Fingerprint()
	require.NoError(t, err)

	changed := sampleReport()
	changed.Cycles = nil
	other, err := changed.Fingerprint()
	require.NoError(t, err)

	assert.NotEqual(t, base, other)
	assert.False(t, strings.EqualFold(base, other))
}
