// Package hints provides context-aware hint providers for the geoconf CLI.
package hints

import (
	"github.com/geoatlas/geoconf/pkg/errors"
)

const validateCommand = "validate"

// Error type vocabulary shared between commands and hint providers.
const (
	// ErrorTypeNotFound means the document file or a resource key was not found.
	ErrorTypeNotFound = "not_found"

	// ErrorTypeParseFailed means the document could not be decoded as YAML.
	ErrorTypeParseFailed = "parse_failed"

	// ErrorTypeValidationFailed means the document violated schema or semantic rules.
	ErrorTypeValidationFailed = "validation_failed"

	// ErrorTypeServerUnavailable means the probed server could not be reached.
	ErrorTypeServerUnavailable = "server_unavailable"

	// ErrorTypeProbeFailed means the server answered but some endpoints failed.
	ErrorTypeProbeFailed = "probe_failed"
)

// ClassifyError maps an error to the hint vocabulary so providers can react
// to what actually went wrong. Unrecognized errors yield an empty string.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.IsNotFound(err):
		return ErrorTypeNotFound
	case errors.IsParseError(err):
		return ErrorTypeParseFailed
	case errors.IsValidationError(err):
		return ErrorTypeValidationFailed
	case errors.IsServerUnavailable(err):
		return ErrorTypeServerUnavailable
	default:
		return ""
	}
}

// RegisterGeoconfProviders registers all standard geoconf hint providers.
func RegisterGeoconfProviders(registry *Registry) {
	// Document discovery and recovery hints
	registry.RegisterFunc("document", documentHintProvider)

	// Validation workflow hints
	registry.RegisterFunc(validateCommand, validationHintProvider)

	// Deployment probe hints
	registry.RegisterFunc("check", probeHintProvider)

	// First-run experience hints
	registry.RegisterFunc("onboarding", onboardingHintProvider)
}

// documentHintProvider provides hints for document discovery failures.
func documentHintProvider(ctx Context) []*Hint {
	var hints []*Hint

	if ctx.Succeeded {
		return hints
	}

	switch ctx.ErrorType {
	case ErrorTypeNotFound:
		hints = append(hints, NewCommand(
			"Generate a starter document to begin",
			"geoconf generate",
		).WithTags("setup", "document"))

		if !ctx.UserState.HasDocument {
			hints = append(hints, New(
				"Set GEOCONF_CONFIG to skip passing the document path to every command",
			).WithTags("setup", "document"))
		}
	case ErrorTypeParseFailed:
		hints = append(hints, New(
			"Check indentation and quoting near the reported line; duplicate keys are rejected",
		).WithTags("troubleshooting", "document"))
	}

	return hints
}

// validationHintProvider provides validation workflow hints.
func validationHintProvider(ctx Context) []*Hint {
	var hints []*Hint

	if ctx.Command != validateCommand {
		return hints
	}

	if !ctx.Succeeded && ctx.ErrorType == ErrorTypeValidationFailed {
		hints = append(hints, NewCommand(
			"Re-validate automatically while you edit",
			"geoconf validate --watch "+ctx.UserState.DocumentPath,
		).WithTags("workflow", "validation"))
	}

	// Successful validation without lint - suggest advisory findings
	if ctx.Succeeded {
		if _, ok := ctx.Flags["lint"]; !ok {
			hints = append(hints, NewCommand(
				"Check for advisory findings beyond hard validation",
				"geoconf validate --lint "+ctx.UserState.DocumentPath,
			).WithTags("workflow", "next-step"))
		}
	}

	return hints
}

// probeHintProvider provides hints for deployment probe failures.
func probeHintProvider(ctx Context) []*Hint {
	var hints []*Hint

	if ctx.Command != "check" || ctx.Succeeded {
		return hints
	}

	switch ctx.ErrorType {
	case ErrorTypeServerUnavailable:
		hints = append(hints, New(
			"Confirm the deployment is running and its bind address matches the url in your document",
		).WithTags("troubleshooting", "probe"))

		hints = append(hints, NewCommand(
			"Probe a different base URL without editing the document",
			"geoconf check --url http://localhost:5000 "+ctx.UserState.DocumentPath,
		).WithTags("troubleshooting", "probe"))
	case ErrorTypeProbeFailed:
		hints = append(hints, New(
			"Endpoints returning 404 usually mean a resource key mismatch between document and deployment",
		).WithTags("troubleshooting", "probe"))
	}

	return hints
}

// onboardingHintProvider provides first-run experience hints.
func onboardingHintProvider(ctx Context) []*Hint {
	var hints []*Hint

	if !ctx.UserState.IsFirstRun {
		return hints
	}

	// Only surface onboarding when nothing points at a document yet
	if ctx.Command == "help" || ctx.Command == "version" || !ctx.UserState.HasDocument {
		hints = append(hints, NewCommand(
			"Start from the sample document and edit from there",
			"geoconf generate",
		).WithTags("onboarding", "getting-started"))
	}

	return hints
}
