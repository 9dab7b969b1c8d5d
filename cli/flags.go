package cli

import (
	"github.com/abiiranathan/goflag"
)

// DefineFlags registers the global flags and the extract and list
// subcommands. The handlers run after config has been populated.
func DefineFlags(config *Config, extractCmd, listCmd func()) *goflag.Context {
	// Flag required by both subcommands
	dbFlag := goflag.Flag{
		FlagType:  goflag.FlagFilePath,
		Name:      "db",
		ShortName: "d",
		Value:     &config.Database,
		Usage:     "The sqlite3 database holding the compressed blobs",
		Required:  true,
		Validator: nil,
	}

	// Create flag context.
	ctx := goflag.NewContext()

	// global flags
	ctx.AddFlag(goflag.FlagInt, "concurrency", "c",
		&config.MaxConcurrency,
		"No of rows to be processed at once",
		false, goflag.Min(1), goflag.Max(100))

	ctx.AddFlag(goflag.FlagString, "query", "q",
		&config.Query,
		"SQL query returning (title, blob) rows",
		false)

	ctx.AddFlag(goflag.FlagString, "log-level", "l",
		&config.LogLevel,
		"Log level: debug, info, warn or error",
		false)

	// register subcommands
	ctx.AddSubCommand("extract", "Extract embedded JPEG images into a folder", extractCmd).
		AddFlagPtr(&dbFlag).
		AddFlag(goflag.FlagString, "out", "o", &config.OutputDir, "The output folder (default: out)", false)

	ctx.AddSubCommand("list", "List rows and the image records found in each, without writing files", listCmd).
		AddFlagPtr(&dbFlag)

	return ctx
}
