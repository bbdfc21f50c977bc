// Package application provides the application interface for geoconf commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Design Principles:
//   - Accept interfaces, return structs (Go proverb)
//   - Define interfaces where they're used, not where they're implemented
//   - Keep interfaces small and focused
//
// Usage in Commands:
//
//	import (
//	    "github.com/geoatlas/geoconf/cmd/application"
//	)
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            doc, err := app.Document(args[0])
//	            if err != nil {
//	                return err
//	            }
//	            // ... use doc
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    DocumentFunc: func(path string, opts ...document.Option) (*document.Document, error) {
//	        return testDocument, nil
//	    },
//	    LoggerFunc: func() *zerolog.Logger {
//	        logger := zerolog.Nop()
//	        return &logger
//	    },
//	}
//	cmd := NewCommand(mock)
//	// ... test command behavior
package application

import (
	"github.com/rs/zerolog"

	"github.com/geoatlas/geoconf/pkg/document"
)

// Application provides the application interface that commands need.
// The App struct from cmd/geoconf/app automatically implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Application interface {
	// Document loads and validates the configuration document at path.
	// An empty path falls back to the GEOCONF_CONFIG environment variable.
	Document(path string, opts ...document.Option) (*document.Document, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	// Commands that support different output formats should use this.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
