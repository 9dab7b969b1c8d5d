package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/abiiranathan/imgextract/database"
	"github.com/abiiranathan/imgextract/dispatch"
	"github.com/abiiranathan/imgextract/extract"
	"github.com/dustin/go-humanize"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/olekukonko/tablewriter"
)

// Extract writes every image found in config.Database under config.OutputDir.
// Per-record failures are logged and counted in the summary; only database
// errors and panicking tasks are returned.
func Extract(ctx context.Context, config *Config, logger *slog.Logger) (dispatch.Summary, error) {
	store, err := database.Open(config.Database)
	if err != nil {
		return dispatch.Summary{}, err
	}
	defer store.Close()

	ex := extract.New(extract.Config{OutputDir: config.OutputDir}, osfs.Default, extract.LogReporter{Logger: logger})
	logger.Info("extracting images",
		"database", config.Database,
		"out", ex.Dir(),
		"concurrency", config.MaxConcurrency,
	)

	d := dispatch.New(dispatch.Config{
		Query:       config.Query,
		Concurrency: config.MaxConcurrency,
		Logger:      logger,
	}, ex)

	sum, err := d.Run(ctx, store)
	logger.Info("extraction finished",
		"rows", sum.Rows,
		"skipped", sum.Skipped,
		"files", sum.Written,
		"decode_failed", sum.DecodeFailed,
		"write_failed", sum.WriteFailed,
		"decompress_failed", sum.DecompressFailed,
	)
	return sum, err
}

// List prints one table line per row: payload and inflated sizes, records
// that extract would write, terminated records whose hex does not decode,
// and markers without a terminator. Nothing is written to disk.
func List(ctx context.Context, config *Config, w io.Writer) error {
	store, err := database.Open(config.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	marker := []byte(extract.DefaultMarker)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Title", "Payload", "Inflated", "Images", "Bad hex", "Incomplete", "Status"})

	rows := 0
	err = store.EachRow(ctx, config.Query, func(row database.Row) error {
		rows++
		if row.Payload == nil {
			table.Append([]string{row.Title, "-", "-", "0", "0", "0", "no payload"})
			return nil
		}

		buf, derr := extract.Decompress(row.Payload)
		images, badHex, incomplete := 0, 0, 0
		for _, rec := range extract.Scan(buf, marker, extract.DefaultTerminator) {
			switch {
			case !rec.Complete:
				incomplete++
			case validHex(rec.Hex):
				images++
			default:
				badHex++
			}
		}

		status := "ok"
		if derr != nil {
			status = "corrupt payload"
		}
		table.Append([]string{
			row.Title,
			humanize.Bytes(uint64(len(row.Payload))),
			humanize.Bytes(uint64(len(buf))),
			strconv.Itoa(images),
			strconv.Itoa(badHex),
			strconv.Itoa(incomplete),
			status,
		})
		return nil
	})
	if err != nil {
		return err
	}

	table.Render()
	fmt.Fprintf(w, "%d rows\n", rows)
	return nil
}

func validHex(src []byte) bool {
	_, err := hex.Decode(make([]byte, hex.DecodedLen(len(src))), src)
	return err == nil
}
