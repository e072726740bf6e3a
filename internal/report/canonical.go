package report

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Domain prefix for report fingerprints. Version suffix enables future
// algorithm migration without colliding with old fingerprints.
const fingerprintDomain = "capcheck/report/v1"

// Snapshot converts the report to a plain map for canonical
// serialization. Field order is irrelevant: canonical marshaling sorts
// keys.
func (r *Report) Snapshot() map[string]any {
	files := make([]any, len(r.Files))
	for i, f := range r.Files {
		violations := make([]any, len(f.Violations))
		for j, v := range f.Violations {
			violations[j] = map[string]any{
				"path":    v.Path,
				"message": v.Message,
				"code":    v.Code,
			}
		}
		files[i] = map[string]any{
			"file":       f.File,
			"violations": violations,
		}
	}

	missing := make([]any, len(r.Missing))
	for i, m := range r.Missing {
		missing[i] = map[string]any{
			"operation": m.Operation,
			"missing":   m.Missing,
			"file":      m.File,
		}
	}

	cycles := make([]any, len(r.Cycles))
	for i, c := range r.Cycles {
		path := make([]any, len(c.Path))
		for j, id := range c.Path {
			path[j] = id
		}
		cycles[i] = path
	}

	warnings := make([]any, len(r.Warnings))
	for i, w := range r.Warnings {
		warnings[i] = w
	}

	return map[string]any{
		"path":     r.Path,
		"files":    files,
		"warnings": warnings,
		"missing":  missing,
		"cycles":   cycles,
		"stats": map[string]any{
			"total_operations":     r.Stats.TotalOperations,
			"operations_with_deps": r.Stats.WithDependencies,
			"total_dependencies":   r.Stats.TotalDependencies,
			"max_dependencies":     r.Stats.MaxDependencies,
			"most_dependent_op":    r.Stats.MostDependent,
		},
		"passed": r.Passed(),
	}
}

// Fingerprint computes the SHA-256 fingerprint of the canonical report
// snapshot. Two runs over unchanged input produce identical
// fingerprints, which is what the history store compares.
func (r *Report) Fingerprint() (string, error) {
	canonical, err := MarshalCanonical(r.Snapshot())
	if err != nil {
		return "", fmt.Errorf("report fingerprint: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MarshalCanonical produces deterministic JSON for hashing: object keys
// sorted, strings NFC normalized, no HTML escaping, no floats, no null.
func MarshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return marshalCanonicalString(val)
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case []any:
		return marshalCanonicalArray(val)
	case map[string]any:
		return marshalCanonicalObject(val)
	default:
		return nil, fmt.Errorf("unsupported type %T in canonical JSON", v)
	}
}

func marshalCanonicalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return nil, err
	}
	// Encode appends a trailing newline.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func marshalCanonicalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := MarshalCanonical(item)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalCanonicalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := MarshalCanonical(obj[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
