// Package schema validates operation definitions against the capability
// schema.
//
// Validation never fails fast: every applicable rule runs even after an
// earlier rule has failed on the same definition, and the result is the
// full ordered list of violations. A definition with an empty violation
// list is valid.
package schema

import (
	"fmt"
	"strings"

	"github.com/roach88/capcheck/internal/catalog"
)

// Violation codes (V100-V199)
const (
	// Load-phase violations (V100-V109)
	CodeParseError = "V100" // file unreadable or YAML failed to decode
	CodeEmptyFile  = "V101" // file decoded to an empty document

	// Required-field violations (V110-V119)
	CodeMissingField = "V110" // required dotted path absent
	CodeEmptyField   = "V111" // required dotted path present but blank

	// Enum violations (V120-V129)
	CodeInvalidMode         = "V120" // operation_mode not in catalog
	CodeInvalidCapability   = "V121" // capability not in catalog
	CodeInvalidDurationType = "V122" // duration.type not in catalog
	CodeInvalidTemplateType = "V123" // template.type not in catalog

	// Duration violations (V130-V139)
	CodeDurationNotInt      = "V130" // expected/timeout not an integer
	CodeDurationNotPositive = "V131" // expected/timeout <= 0
	CodeDurationOrdering    = "V132" // timeout < expected

	// Structural violations (V140-V149)
	CodeNotBoolean    = "V140" // optional boolean field of wrong type
	CodeBadParameters = "V141" // parameters block malformed
	CodeBadRollback   = "V142" // rollback block malformed
	CodeBadValidation = "V143" // validation block malformed
)

// Violation represents one schema rule failure on a definition.
type Violation struct {
	Path    string `json:"path,omitempty"` // dotted path, when one applies
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (v Violation) Error() string {
	return fmt.Sprintf("[%s] %s", v.Code, v.Message)
}

// Check validates one decoded definition document and returns all
// violations found. The document is the full file content, so required
// paths start at the top-level "operation" key.
func Check(doc map[string]any) []Violation {
	var violations []Violation

	violations = append(violations, checkRequiredFields(doc)...)

	op, _ := doc["operation"].(map[string]any)
	if op == nil {
		return violations
	}

	violations = append(violations, checkEnums(op)...)
	violations = append(violations, checkDuration(op)...)
	violations = append(violations, checkOptionalBooleans(op)...)
	violations = append(violations, checkParameters(op)...)
	violations = append(violations, checkRollback(op)...)
	violations = append(violations, checkValidationBlock(op)...)

	return violations
}

func checkRequiredFields(doc map[string]any) []Violation {
	var violations []Violation
	for _, path := range catalog.RequiredFields {
		value, exists := lookup(doc, path)
		if !exists {
			violations = append(violations, Violation{
				Path:    path,
				Message: fmt.Sprintf("Missing required field: %s", path),
				Code:    CodeMissingField,
			})
			continue
		}
		if isBlank(value) {
			violations = append(violations, Violation{
				Path:    path,
				Message: fmt.Sprintf("Empty value for required field: %s", path),
				Code:    CodeEmptyField,
			})
		}
	}
	return violations
}

func checkEnums(op map[string]any) []Violation {
	var violations []Violation

	if mode, ok := op["operation_mode"]; ok {
		if !member(mode, catalog.ValidOperationModes) {
			violations = append(violations, Violation{
				Path: "operation.operation_mode",
				Message: fmt.Sprintf("Invalid operation_mode: '%v' (must be one of: %s)",
					mode, strings.Join(catalog.ValidOperationModes, ", ")),
				Code: CodeInvalidMode,
			})
		}
	}

	if cap, ok := op["capability"]; ok {
		if !member(cap, catalog.ValidCapabilities) {
			violations = append(violations, Violation{
				Path: "operation.capability",
				Message: fmt.Sprintf("Invalid capability: '%v' (must be one of: %s)",
					cap, strings.Join(catalog.ValidCapabilities, ", ")),
				Code: CodeInvalidCapability,
			})
		}
	}

	if template, ok := op["template"].(map[string]any); ok {
		if ttype, ok := template["type"]; ok {
			if !member(ttype, catalog.ValidTemplateTypes) {
				violations = append(violations, Violation{
					Path: "operation.template.type",
					Message: fmt.Sprintf("Invalid template.type: '%v' (must be one of: %s)",
						ttype, strings.Join(catalog.ValidTemplateTypes, ", ")),
					Code: CodeInvalidTemplateType,
				})
			}
		}
	}

	return violations
}

func checkDuration(op map[string]any) []Violation {
	duration, ok := op["duration"].(map[string]any)
	if !ok {
		return nil
	}

	var violations []Violation

	if dtype, ok := duration["type"]; ok {
		if !member(dtype, catalog.ValidDurationTypes) {
			violations = append(violations, Violation{
				Path: "operation.duration.type",
				Message: fmt.Sprintf("Invalid duration.type: '%v' (must be one of: %s)",
					dtype, strings.Join(catalog.ValidDurationTypes, ", ")),
				Code: CodeInvalidDurationType,
			})
		}
	}

	for _, field := range []string{"expected", "timeout"} {
		value, ok := duration[field]
		if !ok {
			continue
		}
		n, isInt := asInt(value)
		if !isInt {
			violations = append(violations, Violation{
				Path: "operation.duration." + field,
				Message: fmt.Sprintf("duration.%s must be integer, got: %s",
					field, typeName(value)),
				Code: CodeDurationNotInt,
			})
			continue
		}
		if n <= 0 {
			violations = append(violations, Violation{
				Path: "operation.duration." + field,
				Message: fmt.Sprintf("duration.%s must be positive, got: %d",
					field, n),
				Code: CodeDurationNotPositive,
			})
		}
	}

	// Ordering rule only fires when both values are integers.
	expected, expOK := asInt(duration["expected"])
	timeout, toOK := asInt(duration["timeout"])
	if expOK && toOK && timeout < expected {
		violations = append(violations, Violation{
			Path: "operation.duration.timeout",
			Message: fmt.Sprintf("duration.timeout (%d) should be >= duration.expected (%d)",
				timeout, expected),
			Code: CodeDurationOrdering,
		})
	}

	return violations
}

func checkOptionalBooleans(op map[string]any) []Violation {
	var violations []Violation
	for _, path := range catalog.OptionalBooleanFields {
		value, exists := lookup(op, path)
		if !exists || value == nil {
			continue
		}
		if _, ok := value.(bool); !ok {
			violations = append(violations, Violation{
				Path: "operation." + path,
				Message: fmt.Sprintf("%s must be boolean, got: %s",
					path, typeName(value)),
				Code: CodeNotBoolean,
			})
		}
	}
	return violations
}

func checkParameters(op map[string]any) []Violation {
	raw, ok := op["parameters"]
	if !ok {
		return nil
	}

	params, ok := raw.(map[string]any)
	if !ok {
		return []Violation{{
			Path:    "operation.parameters",
			Message: "operation.parameters must be a mapping",
			Code:    CodeBadParameters,
		}}
	}

	var violations []Violation

	_, hasRequired := params["required"]
	_, hasOptional := params["optional"]
	if !hasRequired && !hasOptional {
		violations = append(violations, Violation{
			Path:    "operation.parameters",
			Message: "operation.parameters should have 'required' and/or 'optional' keys",
			Code:    CodeBadParameters,
		})
	}

	for _, kind := range []string{"required", "optional"} {
		raw, ok := params[kind]
		if !ok {
			continue
		}
		list, ok := raw.([]any)
		if !ok {
			violations = append(violations, Violation{
				Path:    "operation.parameters." + kind,
				Message: fmt.Sprintf("operation.parameters.%s must be a sequence", kind),
				Code:    CodeBadParameters,
			})
			continue
		}
		for i, entry := range list {
			param, ok := entry.(map[string]any)
			if !ok {
				violations = append(violations, Violation{
					Path:    fmt.Sprintf("operation.parameters.%s[%d]", kind, i),
					Message: fmt.Sprintf("operation.parameters.%s[%d] must be a mapping", kind, i),
					Code:    CodeBadParameters,
				})
				continue
			}
			for _, key := range []string{"name", "type", "description"} {
				if _, ok := param[key]; !ok {
					violations = append(violations, Violation{
						Path:    fmt.Sprintf("operation.parameters.%s[%d]", kind, i),
						Message: fmt.Sprintf("operation.parameters.%s[%d] missing '%s'", kind, i, key),
						Code:    CodeBadParameters,
					})
				}
			}
		}
	}

	return violations
}

func checkRollback(op map[string]any) []Violation {
	raw, ok := op["rollback"]
	if !ok {
		return nil
	}

	rollback, ok := raw.(map[string]any)
	if !ok {
		return []Violation{{
			Path:    "operation.rollback",
			Message: "operation.rollback must be a mapping",
			Code:    CodeBadRollback,
		}}
	}

	enabled, ok := rollback["enabled"]
	if !ok || !truthy(enabled) {
		return nil
	}

	steps, ok := rollback["steps"]
	if !ok {
		return []Violation{{
			Path:    "operation.rollback.steps",
			Message: "operation.rollback.steps required when enabled=true",
			Code:    CodeBadRollback,
		}}
	}

	list, ok := steps.([]any)
	if !ok {
		return []Violation{{
			Path:    "operation.rollback.steps",
			Message: "operation.rollback.steps must be a sequence",
			Code:    CodeBadRollback,
		}}
	}

	var violations []Violation
	for i, entry := range list {
		step, ok := entry.(map[string]any)
		if !ok {
			violations = append(violations, Violation{
				Path:    fmt.Sprintf("operation.rollback.steps[%d]", i),
				Message: fmt.Sprintf("operation.rollback.steps[%d] must be a mapping", i),
				Code:    CodeBadRollback,
			})
			continue
		}
		for _, key := range []string{"name", "command"} {
			if _, ok := step[key]; !ok {
				violations = append(violations, Violation{
					Path:    fmt.Sprintf("operation.rollback.steps[%d]", i),
					Message: fmt.Sprintf("operation.rollback.steps[%d] missing '%s'", i, key),
					Code:    CodeBadRollback,
				})
			}
		}
	}

	return violations
}

func checkValidationBlock(op map[string]any) []Violation {
	raw, ok := op["validation"]
	if !ok {
		return nil
	}

	validation, ok := raw.(map[string]any)
	if !ok {
		return []Violation{{
			Path:    "operation.validation",
			Message: "operation.validation must be a mapping",
			Code:    CodeBadValidation,
		}}
	}

	var violations []Violation
	for _, key := range []string{"checks", "pre_checks", "post_checks"} {
		value, ok := validation[key]
		if !ok {
			continue
		}
		if _, ok := value.([]any); !ok {
			violations = append(violations, Violation{
				Path:    "operation.validation." + key,
				Message: fmt.Sprintf("operation.validation.%s must be a sequence", key),
				Code:    CodeBadValidation,
			})
		}
	}

	return violations
}
