package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ParseLevel parses debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, errors.Wrapf(err, "invalid log level %q", s)
	}
	return level, nil
}

// NewLogger returns a human-readable logger writing to f. Colors are only
// used when f is a terminal.
func NewLogger(f *os.File, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(colorable.NewColorable(f), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(f.Fd()),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Render errors with Error() so wrapped errors stay on one line.
			if err, ok := a.Value.Any().(error); ok && a.Value.Kind() == slog.KindAny {
				return slog.String(a.Key, err.Error())
			}
			return a
		},
	}))
}
