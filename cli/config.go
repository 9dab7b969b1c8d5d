package cli

import (
	"github.com/abiiranathan/imgextract/database"
	"github.com/abiiranathan/imgextract/dispatch"
)

// Config holds the configuration for the CLI.
type Config struct {
	// Max rows processed at a time.
	// Large values will increase CPU and memory usage.
	// Default is 10.
	MaxConcurrency int

	// the sqlite3 database holding the compressed blobs
	Database string

	// the directory receiving extracted images. Empty means "out".
	OutputDir string

	// query returning (title, blob) rows
	Query string

	// debug, info, warn or error
	LogLevel string
}

var DefaultConfig = Config{
	MaxConcurrency: dispatch.DefaultConcurrency,
	Query:          database.DefaultQuery,
	LogLevel:       "info",
}
