package extract

import (
	"encoding/hex"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-billy/v5"
)

const (
	// DefaultMarker tags the start of an embedded JPEG record.
	DefaultMarker = "TJPEGImage\r\n"

	// DefaultTerminator ends the hex text of a record.
	DefaultTerminator byte = '\r'

	// DefaultOutputDir is used when no output directory is given.
	DefaultOutputDir = "out"
)

// FS is the part of a billy filesystem the extractor writes through.
// MkdirAll must succeed when the directory already exists.
type FS interface {
	billy.Basic
	billy.Dir
}

// Config holds the immutable extraction settings.
type Config struct {
	// Marker preceding each record. Empty means DefaultMarker.
	Marker []byte

	// Terminator ending each record. Zero means DefaultTerminator.
	Terminator byte

	// OutputDir receives the artifacts. Empty means DefaultOutputDir
	// (or FallbackDir when set).
	OutputDir string

	// FallbackDir replaces DefaultOutputDir as the substitute for an empty
	// OutputDir.
	FallbackDir string
}

// Result summarizes the extraction of one row.
type Result struct {
	Title            string
	InflatedSize     int
	DecompressFailed bool
	Markers          int // Marker occurrences, complete or not.
	Written          int
	DecodeFailed     int
	WriteFailed      int
	Incomplete       int
}

// Extractor scans decompressed buffers for records and writes one artifact
// per decoded record. It holds no per-row state and may be shared by
// concurrent tasks.
type Extractor struct {
	marker     []byte
	terminator byte
	dir        string
	fs         FS
	reporter   Reporter
}

// New creates an Extractor. A nil reporter discards events.
func New(cfg Config, fs FS, reporter Reporter) *Extractor {
	marker := cfg.Marker
	if len(marker) == 0 {
		marker = []byte(DefaultMarker)
	}
	terminator := cfg.Terminator
	if terminator == 0 {
		terminator = DefaultTerminator
	}
	if reporter == nil {
		reporter = ReporterFunc(func(Event) {})
	}

	return &Extractor{
		marker:     append([]byte(nil), marker...),
		terminator: terminator,
		dir:        ResolveDir(cfg.OutputDir, ResolveDir(cfg.FallbackDir, DefaultOutputDir)),
		fs:         fs,
		reporter:   reporter,
	}
}

// Dir returns the resolved output directory.
func (e *Extractor) Dir() string {
	return e.dir
}

// Process decompresses payload and extracts its records. A decompression
// failure is reported and extraction continues on the partial buffer.
func (e *Extractor) Process(payload []byte, title string) Result {
	buf, err := Decompress(payload)
	if err != nil {
		e.reporter.Report(Event{Title: title, Outcome: RowDecompressFailed, Err: err})
	}

	res := e.Extract(buf, title)
	res.DecompressFailed = err != nil
	return res
}

// Extract writes every decodable record of buf as
// <dir>/<sanitized-title>_<index>.jpg, numbering from 1 in scan order.
//
// Failures are reported and never stop the scan. The index advances on every
// successful hex decode, so a write failure leaves a gap in the numbering.
func (e *Extractor) Extract(buf []byte, title string) Result {
	res := Result{Title: title, InflatedSize: len(buf)}
	index := 0

	for _, rec := range Scan(buf, e.marker, e.terminator) {
		res.Markers++
		if !rec.Complete {
			res.Incomplete++
			e.reporter.Report(Event{Title: title, Outcome: RecordIncomplete, Offset: rec.Offset})
			continue
		}

		img := make([]byte, hex.DecodedLen(len(rec.Hex)))
		if _, err := hex.Decode(img, rec.Hex); err != nil {
			res.DecodeFailed++
			e.reporter.Report(Event{
				Title:   title,
				Outcome: RecordDecodeFailed,
				Offset:  rec.Offset,
				Err:     errors.Mark(errors.Wrapf(err, "record at offset %d", rec.Offset), ErrHexDecode),
			})
			continue
		}

		index++
		path := ArtifactPath(e.dir, title, index)
		if err := e.write(path, img); err != nil {
			res.WriteFailed++
			e.reporter.Report(Event{
				Title:   title,
				Outcome: RecordWriteFailed,
				Offset:  rec.Offset,
				Index:   index,
				Path:    path,
				Err:     errors.Mark(err, ErrFileSystem),
			})
			continue
		}

		res.Written++
		e.reporter.Report(Event{
			Title:   title,
			Outcome: RecordWritten,
			Offset:  rec.Offset,
			Index:   index,
			Path:    path,
		})
	}
	return res
}

func (e *Extractor) write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %q", dir)
	}

	f, err := e.fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", path)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %q", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "closing %q", path)
	}
	return nil
}
