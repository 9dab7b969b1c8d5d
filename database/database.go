package database

import (
	"context"
	"database/sql"
	"net/url"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultQuery selects (title, blob) pairs from the source application's schema.
const DefaultQuery = `SELECT t.标题, s.内容 FROM 标题 as t JOIN 资料库 as s WHERE t.ID = s.fid`

// Store is a read-only connection to a source sqlite3 database.
type Store struct {
	db *sql.DB
}

// Open connects to the sqlite3 database at path in read-only mode.
func Open(path string) (*Store, error) {
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open database %q", path)
	}

	// ping the database to ensure we are connected.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "unable to ping database %q", path)
	}
	return &Store{db: db}, nil
}

// Close the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// EachRow runs query and calls fn for every (title, blob) row as it is read.
// A NULL title is passed as "". Payload is a copy owned by fn.
// Iteration stops at the first error returned by fn.
func (s *Store) EachRow(ctx context.Context, query string, fn func(Row) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "query failed")
	}
	defer rows.Close()

	for rows.Next() {
		var title sql.NullString
		var payload []byte

		// Scan copies into *[]byte, so payload does not alias driver memory.
		if err := rows.Scan(&title, &payload); err != nil {
			return errors.Wrap(err, "scanning row")
		}
		if err := fn(Row{Title: title.String, Payload: payload}); err != nil {
			return err
		}
	}
	return rows.Err()
}
