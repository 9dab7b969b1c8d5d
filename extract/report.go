package extract

import (
	"fmt"
	"log/slog"
)

// Outcome classifies an Event.
type Outcome int

const (
	RecordWritten       Outcome = iota // Artifact created and fully written.
	RecordIncomplete                   // Marker with no terminator before buffer end.
	RecordDecodeFailed                 // Hex text did not decode.
	RecordWriteFailed                  // Directory, file creation or write failed.
	RowDecompressFailed                // Payload was not valid zlib data.
)

func (o Outcome) String() string {
	switch o {
	case RecordWritten:
		return "written"
	case RecordIncomplete:
		return "incomplete"
	case RecordDecodeFailed:
		return "decode_failed"
	case RecordWriteFailed:
		return "write_failed"
	case RowDecompressFailed:
		return "decompress_failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Event describes what happened to one record, or to a whole row for
// RowDecompressFailed.
type Event struct {
	Title   string
	Outcome Outcome
	Offset  int    // Marker offset in the buffer; 0 for row events.
	Index   int    // Artifact index, 0 when no index was assigned.
	Path    string // Artifact path for RecordWritten and RecordWriteFailed.
	Err     error
}

// Reporter receives extraction outcomes. Implementations must be safe for
// concurrent use since rows are processed in parallel.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Event)

func (f ReporterFunc) Report(ev Event) { f(ev) }

// LogReporter writes every event to a slog.Logger.
type LogReporter struct {
	Logger *slog.Logger
}

func (r LogReporter) Report(ev Event) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch ev.Outcome {
	case RecordWritten:
		logger.Info("created file", "path", ev.Path)
	case RecordIncomplete:
		logger.Debug("marker without terminator", "title", ev.Title, "offset", ev.Offset)
	case RecordDecodeFailed:
		logger.Warn("hex decode failed", "title", ev.Title, "offset", ev.Offset, errAttr(ev.Err))
	case RecordWriteFailed:
		logger.Error("creation failed", "path", ev.Path, errAttr(ev.Err))
	case RowDecompressFailed:
		logger.Warn("decompress error", "title", ev.Title, errAttr(ev.Err))
	}
}

// errAttr keeps diagnostics on one line: handlers that format errors with
// %+v would otherwise print the attached stack traces.
func errAttr(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("err", err.Error())
}
