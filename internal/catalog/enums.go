package catalog

// RequiredFields lists the dotted paths every operation definition must
// carry. Paths are resolved against the full document, so each starts at
// the top-level "operation" key.
var RequiredFields = []string{
	"operation.id",
	"operation.name",
	"operation.description",
	"operation.capability",
	"operation.operation_mode",
	"operation.resource_type",
	"operation.duration.expected",
	"operation.duration.timeout",
	"operation.duration.type",
	"operation.template.type",
	"operation.template.command",
}

// ValidOperationModes defines the allowed operation_mode values.
var ValidOperationModes = []string{
	"create", "configure", "validate", "update", "delete", "read",
	"modify", "adopt", "assign", "verify", "add", "remove", "drain",
	"enable", "disable", "migrate",
}

// ValidDurationTypes defines the allowed duration.type values.
var ValidDurationTypes = []string{"FAST", "NORMAL", "WAIT", "LONG"}

// ValidCapabilities defines the allowed capability values.
var ValidCapabilities = []string{
	"networking", "storage", "identity", "compute", "avd", "management",
	"test-capability",
}

// ValidTemplateTypes defines the allowed template.type values.
var ValidTemplateTypes = []string{
	"powershell-local", "powershell-remote", "powershell-vm-command",
	"azure-cli", "bash", "bash-script",
}

// OptionalBooleanFields lists paths under the operation mapping that, when
// present and non-null, must hold a boolean.
var OptionalBooleanFields = []string{
	"validation.enabled",
	"idempotency.enabled",
	"rollback.enabled",
}
