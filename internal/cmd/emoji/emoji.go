// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
// These symbols are used for status indicators, findings, and user feedback in terminal output.
const (
	// Success represents successful completion of an operation.
	// Used for: documents that validate, endpoints that answer, completed writes.
	Success = "✓"

	// Error represents failures or violated invariants.
	// Used for: validation errors, unreachable endpoints, failed writes.
	Error = "✗"

	// Warning represents warnings or non-critical issues.
	// Used for: lint findings, advisory notices.
	Warning = "!"

	// Optional represents optional or skipped items.
	// Used for: skipped checks, absent optional sections.
	Optional = "-"

	// Unknown represents unknown or indeterminate states.
	// Used for: endpoints that were not probed, unrecognized status.
	Unknown = "?"

	// Info represents informational messages.
	// Used for: general information, tips, context.
	Info = "i"
)
