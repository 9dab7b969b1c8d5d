package extract

import "github.com/cockroachdb/errors"

// Error kinds reported while processing a row. None of them abort a run;
// match them with errors.Is.
var (
	ErrDecompression = errors.New("decompression failed")
	ErrHexDecode     = errors.New("hex decode failed")
	ErrFileSystem    = errors.New("file system error")
)
