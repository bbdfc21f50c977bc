package app

import (
	"github.com/geoatlas/geoconf/cmd/application"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
