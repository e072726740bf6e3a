package catalog

// Operation represents one loaded operation definition.
//
// Only the fields the dependency-graph phase needs are lifted out of the
// raw document; the schema phase works on the raw mapping directly so
// that rule messages can name exact dotted paths.
type Operation struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Capability string    `json:"capability"`
	File       string    `json:"file"`
	Requires   []Require `json:"requires,omitempty"`
}

// Require is one entry of an operation's requires list.
//
// A requires entry is either a bare id string or a structured reference
// whose "operation" key supplies the id. Any other shape resolves to the
// empty id and contributes no graph edge.
type Require struct {
	Operation string `json:"operation"` // resolved id, "" if unresolvable
	Raw       any    `json:"-"`         // original decoded YAML value
}

// Resolved reports whether the entry names a dependency id.
func (r Require) Resolved() bool {
	return r.Operation != ""
}

// ParseRequire resolves one raw requires entry to a Require.
// Bare strings resolve to themselves; mappings resolve through their
// "operation" key; everything else is unresolvable.
func ParseRequire(v any) Require {
	switch ref := v.(type) {
	case string:
		return Require{Operation: ref, Raw: v}
	case map[string]any:
		id, _ := ref["operation"].(string)
		return Require{Operation: id, Raw: v}
	default:
		return Require{Raw: v}
	}
}

// ParseOperation extracts an Operation record from a decoded definition
// document. Returns nil when the document has no top-level "operation"
// mapping; such files are not operation definitions and are skipped.
//
// A record with an empty ID is returned as-is: the caller decides whether
// to warn and exclude it from the graph.
func ParseOperation(path string, doc map[string]any) *Operation {
	raw, ok := doc["operation"].(map[string]any)
	if !ok {
		return nil
	}

	op := &Operation{
		File:       path,
		Name:       "Unknown",
		Capability: "unknown",
	}
	if id, ok := raw["id"].(string); ok {
		op.ID = id
	}
	if name, ok := raw["name"].(string); ok && name != "" {
		op.Name = name
	}
	if cap, ok := raw["capability"].(string); ok && cap != "" {
		op.Capability = cap
	}

	if requires, ok := raw["requires"].([]any); ok {
		op.Requires = make([]Require, 0, len(requires))
		for _, entry := range requires {
			op.Requires = append(op.Requires, ParseRequire(entry))
		}
	}

	return op
}
