// Package constants provides shared constants used throughout the geoconf codebase.
// This includes timeouts, retry policy, and file permissions that should be
// consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to deployed servers
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// RetryBackoff is the base backoff duration for retries
	RetryBackoff = 500 * time.Millisecond

	// MaxRetryBackoff is the maximum backoff duration for retries
	MaxRetryBackoff = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxRetries is the maximum number of attempts for a failed endpoint probe
	MaxRetries = 3

	// MaxConcurrentProbes is the maximum number of endpoints probed concurrently
	MaxConcurrentProbes = 4
)
