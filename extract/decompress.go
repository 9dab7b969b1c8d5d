package extract

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zlib"
)

// Decompress inflates a zlib (RFC 1950) payload.
//
// On corrupt or truncated input it returns whatever was inflated before the
// failure, possibly nothing, together with an error marked ErrDecompression.
func Decompress(payload []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "reading zlib header"), ErrDecompression)
	}
	defer r.Close()

	buf, err := io.ReadAll(r)
	if err != nil {
		return buf, errors.Mark(errors.Wrapf(err, "inflating after %d bytes", len(buf)), ErrDecompression)
	}
	return buf, nil
}
