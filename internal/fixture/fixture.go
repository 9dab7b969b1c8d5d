// Package fixture builds payloads and SQLite databases for tests.
package fixture

import (
	"bytes"
	"database/sql"
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// Marker matches extract.DefaultMarker.
const Marker = "TJPEGImage\r\n"

// Row is a (title, payload) pair to seed. A nil Payload is stored as NULL.
type Row struct {
	Title   string
	Payload []byte
}

// Record returns marker + hex(img) + '\r'.
func Record(img []byte) []byte {
	out := []byte(Marker)
	out = append(out, hex.EncodeToString(img)...)
	return append(out, '\r')
}

// Buffer concatenates parts.
func Buffer(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// Compress zlib-compresses data.
func Compress(t testing.TB, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// Database creates a SQLite file in t.TempDir() using the same tables as the
// source application, seeds rows, and returns its path.
func Database(t testing.TB, rows []Row) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "source.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE 标题 (ID INTEGER PRIMARY KEY, 标题 TEXT);
		CREATE TABLE 资料库 (ID INTEGER PRIMARY KEY, fid INTEGER, 内容 BLOB);
	`)
	require.NoError(t, err)

	for i, row := range rows {
		id := i + 1
		_, err := db.Exec(`INSERT INTO 标题 (ID, 标题) VALUES (?, ?)`, id, row.Title)
		require.NoError(t, err)

		var payload any
		if row.Payload != nil {
			payload = row.Payload
		}
		_, err = db.Exec(`INSERT INTO 资料库 (fid, 内容) VALUES (?, ?)`, id, payload)
		require.NoError(t, err)
	}
	return path
}
