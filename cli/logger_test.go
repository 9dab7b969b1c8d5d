package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abiiranathan/imgextract/extract"
	"github.com/cockroachdb/errors"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/lmittmann/tint"
	"github.com/stretchr/testify/require"
)

func logLines(t *testing.T, run func(logger *slog.Logger)) []string {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	require.NoError(t, err)
	defer f.Close()

	run(NewLogger(f, slog.LevelInfo))

	b, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestNewLoggerPlainOutput(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	require.NoError(t, err)
	defer f.Close()

	logger := NewLogger(f, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("created file", "path", "out/a_1.jpg")

	b, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	out := string(b)
	require.Contains(t, out, "created file")
	require.Contains(t, out, "path=out/a_1.jpg")
	require.NotContains(t, out, "hidden")
	// Not a terminal, so no ANSI escapes.
	require.False(t, strings.Contains(out, "\x1b["), out)
}

func TestExtractDiagnosticsStayOnOneLine(t *testing.T) {
	lines := logLines(t, func(logger *slog.Logger) {
		ex := extract.New(extract.Config{}, memfs.New(), extract.LogReporter{Logger: logger})
		ex.Process([]byte("garbage"), "bad")
		ex.Extract([]byte(extract.DefaultMarker+"g\r"), "hex")
	})

	require.Len(t, lines, 2, strings.Join(lines, "\n"))
	require.Contains(t, lines[0], "decompress error")
	require.Contains(t, lines[1], "hex decode failed")
	require.Contains(t, lines[1], "invalid byte")
	for _, line := range lines {
		require.NotContains(t, line, "stack trace")
		require.NotContains(t, line, `\n`)
	}
}

func TestNewLoggerFormatsWrappedErrors(t *testing.T) {
	err := errors.Wrap(errors.New("permission denied"), "creating \"out/a_1.jpg\"")
	lines := logLines(t, func(logger *slog.Logger) {
		logger.Error("creation failed", tint.Err(err))
	})

	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "permission denied")
	require.NotContains(t, lines[0], "stack trace")
	require.NotContains(t, lines[0], `\n`)
}
