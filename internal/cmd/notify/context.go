// Package notify provides context detection for smart hint generation.
package notify

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/geoatlas/geoconf/internal/cmd/hints"
)

// ContextBuilder helps build hint contexts from command execution.
type ContextBuilder struct {
	context hints.Context
}

// NewContextBuilder creates a new context builder.
func NewContextBuilder() *ContextBuilder {
	return &ContextBuilder{
		context: hints.Context{
			Environment: detectEnvironment(),
			UserState:   detectUserState(),
		},
	}
}

// FromCommand configures the context from a Cobra command.
func (cb *ContextBuilder) FromCommand(cmd *cobra.Command, args []string) *ContextBuilder {
	cb.context.Command = cmd.Name()
	cb.context.Args = args

	// Extract subcommand if present
	if cmd.Parent() != nil && cmd.Parent().Name() != "geoconf" {
		cb.context.Subcommand = cmd.Name()
		cb.context.Command = cmd.Parent().Name()
	}

	// Extract flags
	cb.context.Flags = make(map[string]string)
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if flag.Changed {
			cb.context.Flags[flag.Name] = flag.Value.String()
		}
	})

	return cb
}

// WithSuccess sets the operation success status.
func (cb *ContextBuilder) WithSuccess(succeeded bool) *ContextBuilder {
	cb.context.Succeeded = succeeded
	return cb
}

// WithError sets the error type for failed operations.
func (cb *ContextBuilder) WithError(errorType string) *ContextBuilder {
	cb.context.ErrorType = errorType
	cb.context.Succeeded = false
	return cb
}

// WithDocument sets the document path in the user state.
func (cb *ContextBuilder) WithDocument(path string) *ContextBuilder {
	cb.context.UserState.DocumentPath = path
	cb.context.UserState.HasDocument = path != ""
	return cb
}

// Build returns the constructed context.
func (cb *ContextBuilder) Build() hints.Context {
	return cb.context
}

// detectEnvironment detects the current runtime environment.
func detectEnvironment() hints.Environment {
	env := hints.Environment{
		OS:         runtime.GOOS,
		IsTerminal: isTerminal(os.Stdout),
		IsCI:       isCI(),
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		env.Shell = filepath.Base(shell)
	}

	if wd, err := os.Getwd(); err == nil {
		env.WorkingDir = wd
	}

	return env
}

// detectUserState detects the current user configuration state.
func detectUserState() hints.UserState {
	state := hints.UserState{
		DocumentPath: detectDocumentPath(),
		IsFirstRun:   isFirstRun(),
	}
	state.HasDocument = state.DocumentPath != ""

	if format := os.Getenv("GEOCONF_OUTPUT"); format != "" {
		state.ConfiguredOutput = format
	}

	return state
}

// detectDocumentPath finds a configuration document from the environment
// or conventional file names in the working directory.
func detectDocumentPath() string {
	if path := os.Getenv("GEOCONF_CONFIG"); path != "" {
		return path
	}

	candidates := []string{
		"geoconf.yml",
		"geoconf.yaml",
		"config.yml",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// isFirstRun detects if this is the user's first time running geoconf.
func isFirstRun() bool {
	indicators := []string{
		".geoconf.yaml",
		".geoconf.yml",
		"geoconf.yml",
	}

	// Check current directory
	for _, indicator := range indicators {
		if _, err := os.Stat(indicator); err == nil {
			return false
		}
	}

	// Check home directory
	if home, err := os.UserHomeDir(); err == nil {
		for _, indicator := range indicators {
			if _, err := os.Stat(filepath.Join(home, indicator)); err == nil {
				return false
			}
		}
	}

	if os.Getenv("GEOCONF_CONFIG") != "" {
		return false
	}

	return true
}

// CommonContexts provides pre-built contexts for common scenarios.
type CommonContexts struct{}

// Validation creates a context for the validate command.
func (CommonContexts) Validation(documentPath string, succeeded bool, errorType string) hints.Context {
	ctx := NewContextBuilder().WithDocument(documentPath).Build()
	ctx.Command = "validate"
	ctx.Succeeded = succeeded

	if !succeeded && errorType != "" {
		ctx.ErrorType = errorType
	}

	return ctx
}

// Check creates a context for the check command.
func (CommonContexts) Check(documentPath string, succeeded bool, errorType string) hints.Context {
	ctx := NewContextBuilder().WithDocument(documentPath).Build()
	ctx.Command = "check"
	ctx.Succeeded = succeeded

	if !succeeded && errorType != "" {
		ctx.ErrorType = errorType
	}

	return ctx
}

// Command creates a context for generic command execution.
func (CommonContexts) Command(command, subcommand string, succeeded bool, errorType string) hints.Context {
	ctx := NewContextBuilder().Build()
	ctx.Command = command
	ctx.Subcommand = subcommand
	ctx.Succeeded = succeeded

	if !succeeded && errorType != "" {
		ctx.ErrorType = errorType
	}

	return ctx
}

// Global contexts instance for convenience.
var Contexts CommonContexts
