package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/abiiranathan/imgextract/database"
	"github.com/abiiranathan/imgextract/extract"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of rows processed at once when Config
// leaves it unset.
const DefaultConcurrency = 10

// Source streams rows for a query.
type Source interface {
	EachRow(ctx context.Context, query string, fn func(database.Row) error) error
}

// Processor runs the per-row pipeline. *extract.Extractor implements it.
type Processor interface {
	Process(payload []byte, title string) extract.Result
}

// Config for a Dispatcher.
type Config struct {
	Query       string // Row query. Empty means database.DefaultQuery.
	Concurrency int    // Max rows in flight. Zero or negative means DefaultConcurrency.
	Logger      *slog.Logger
}

// FatalTaskError is returned by Run when a row task panicked.
// It is the only per-row failure that aborts a run.
type FatalTaskError struct {
	Title string
	Value any
	Stack []byte
}

func (e *FatalTaskError) Error() string {
	return fmt.Sprintf("task for %q panicked: %v", e.Title, e.Value)
}

// Summary aggregates the results of every processed row.
type Summary struct {
	Rows             int // Rows returned by the query.
	Skipped          int // Rows with a NULL payload.
	Processed        int // Rows whose task completed.
	Written          int
	DecodeFailed     int
	WriteFailed      int
	Incomplete       int
	DecompressFailed int
}

// Dispatcher runs one task per eligible row on a bounded group of goroutines.
type Dispatcher struct {
	query       string
	concurrency int
	proc        Processor
	logger      *slog.Logger
}

// New creates a Dispatcher feeding rows to proc.
func New(cfg Config, proc Processor) *Dispatcher {
	query := cfg.Query
	if query == "" {
		query = database.DefaultQuery
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Dispatcher{
		query:       query,
		concurrency: concurrency,
		proc:        proc,
		logger:      logger,
	}
}

// Run reads every row from src and processes rows that carry a payload,
// returning once all tasks have finished.
//
// Content errors inside a row never fail the run. Run returns a
// *FatalTaskError if a task panicked, or the source's error if the rows
// could not be read. The summary covers every task that completed.
func (d *Dispatcher) Run(ctx context.Context, src Source) (Summary, error) {
	var (
		mu  sync.Mutex
		sum Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	iterErr := src.EachRow(gctx, d.query, func(row database.Row) error {
		mu.Lock()
		sum.Rows++
		if row.Payload == nil {
			sum.Skipped++
		}
		mu.Unlock()

		if row.Payload == nil {
			d.logger.Debug("skipping row without payload", "title", row.Title)
			return nil
		}

		// Stop feeding rows once a task has failed fatally.
		if err := gctx.Err(); err != nil {
			return err
		}

		title, payload := row.Title, row.Payload
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &FatalTaskError{Title: title, Value: r, Stack: debug.Stack()}
				}
			}()

			res := d.proc.Process(payload, title)

			mu.Lock()
			sum.add(res)
			mu.Unlock()
			return nil
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return sum, err
	}
	if iterErr != nil {
		return sum, errors.Wrap(iterErr, "reading rows")
	}
	return sum, nil
}

func (s *Summary) add(res extract.Result) {
	s.Processed++
	s.Written += res.Written
	s.DecodeFailed += res.DecodeFailed
	s.WriteFailed += res.WriteFailed
	s.Incomplete += res.Incomplete
	if res.DecompressFailed {
		s.DecompressFailed++
	}
}
