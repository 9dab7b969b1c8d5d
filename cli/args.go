package cli

import (
	"path/filepath"
	"slices"
	"strings"
)

var subcommands = []string{"extract", "list"}

// Usage returns the one-line usage message for program.
func Usage(program string) string {
	return filepath.Base(program) + " <db_file> <out_folder>"
}

// NormalizeArgs rewrites the positional form "prog <db_file> [out_folder]"
// into "prog extract --db <db_file> [--out <out_folder>]" so that both forms
// go through the same flag parser. Anything else is returned unchanged.
//
// A first argument naming a subcommand ("extract", "list") or starting with
// '-' is not positional. Put "--" first for a db_file named like a
// subcommand ("prog -- list out"); write a dash-prefixed name as "./-name".
//
// ok is false when no db_file is given; the caller should print Usage and
// exit successfully.
func NormalizeArgs(args []string) (normalized []string, ok bool) {
	if len(args) < 2 {
		return args, false
	}

	positional := args[1:]
	if args[1] == "--" {
		positional = args[2:]
		if len(positional) == 0 {
			return args, false
		}
	} else if strings.HasPrefix(args[1], "-") || slices.Contains(subcommands, args[1]) {
		return args, true
	}

	normalized = []string{args[0], "extract", "--db", positional[0]}
	if len(positional) > 1 && positional[1] != "" {
		normalized = append(normalized, "--out", positional[1])
	}
	return normalized, true
}
