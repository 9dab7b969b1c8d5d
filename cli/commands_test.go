package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abiiranathan/imgextract/internal/fixture"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestExtract(t *testing.T) {
	db := fixture.Database(t, []fixture.Row{
		{Title: "a.b?c", Payload: fixture.Compress(t, fixture.Buffer(fixture.Record([]byte{0xFF, 0xD8, 0xFF}), []byte("junk")))},
		{Title: "empty"},
		{Title: "broken", Payload: []byte("not compressed")},
	})
	out := filepath.Join(t.TempDir(), "images")

	config := DefaultConfig
	config.Database = db
	config.OutputDir = out

	sum, err := Extract(context.Background(), &config, discardLogger())
	require.NoError(t, err)
	require.Equal(t, 3, sum.Rows)
	require.Equal(t, 1, sum.Skipped)
	require.Equal(t, 1, sum.Written)
	require.Equal(t, 1, sum.DecompressFailed)

	b, err := os.ReadFile(filepath.Join(out, "a_b_c_1.jpg"))
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xD8, 0xFF}, b)

	// A second run over the same folder succeeds as well.
	sum, err = Extract(context.Background(), &config, discardLogger())
	require.NoError(t, err)
	require.Equal(t, 1, sum.Written)
	require.Zero(t, sum.WriteFailed)
}

func TestExtractDefaultFolder(t *testing.T) {
	db := fixture.Database(t, []fixture.Row{
		{Title: "x", Payload: fixture.Compress(t, fixture.Record([]byte{1}))},
	})
	t.Chdir(t.TempDir())

	config := DefaultConfig
	config.Database = db

	_, err := Extract(context.Background(), &config, discardLogger())
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join("out", "x_1.jpg"))
	require.NoError(t, err)
	require.Equal(t, []byte{1}, b)
}

func TestExtractMissingDatabase(t *testing.T) {
	config := DefaultConfig
	config.Database = filepath.Join(t.TempDir(), "nope.db")

	_, err := Extract(context.Background(), &config, discardLogger())
	require.Error(t, err)
}

func TestList(t *testing.T) {
	db := fixture.Database(t, []fixture.Row{
		{Title: "photos", Payload: fixture.Compress(t, fixture.Buffer(
			fixture.Record([]byte{1}),
			fixture.Record([]byte{2}),
			[]byte(fixture.Marker+"dangling"),
		))},
		{Title: "nothing"},
	})
	out := t.TempDir()

	config := DefaultConfig
	config.Database = db
	config.OutputDir = out

	var buf bytes.Buffer
	require.NoError(t, List(context.Background(), &config, &buf))

	text := buf.String()
	require.Contains(t, text, "photos")
	require.Contains(t, text, "nothing")
	require.Contains(t, text, "no payload")
	require.Contains(t, text, "2 rows")

	// Listing never writes files.
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestListBadQuery(t *testing.T) {
	config := DefaultConfig
	config.Database = fixture.Database(t, nil)
	config.Query = "SELECT title FROM nowhere"

	require.Error(t, List(context.Background(), &config, &bytes.Buffer{}))
}

// tableRow returns the trimmed cells of the table line whose first cell is title.
func tableRow(t *testing.T, text, title string) []string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		cells := strings.Split(strings.Trim(strings.TrimSpace(line), "|"), "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		if len(cells) > 1 && cells[0] == title {
			return cells
		}
	}
	t.Fatalf("no row for %q in:\n%s", title, text)
	return nil
}

func TestListCountsOnlyDecodableImages(t *testing.T) {
	db := fixture.Database(t, []fixture.Row{
		{Title: "badhex", Payload: fixture.Compress(t, []byte(fixture.Marker+"zz\r"))},
		{Title: "mixed", Payload: fixture.Compress(t, fixture.Buffer(
			fixture.Record([]byte{1}),
			[]byte(fixture.Marker+"abc\r"),
			fixture.Record([]byte{2}),
		))},
	})

	config := DefaultConfig
	config.Database = db

	var buf bytes.Buffer
	require.NoError(t, List(context.Background(), &config, &buf))

	// Columns: title, payload, inflated, images, bad hex, incomplete, status.
	row := tableRow(t, buf.String(), "badhex")
	require.Equal(t, []string{"0", "1", "0", "ok"}, row[3:])

	row = tableRow(t, buf.String(), "mixed")
	require.Equal(t, []string{"2", "1", "0", "ok"}, row[3:])
}
