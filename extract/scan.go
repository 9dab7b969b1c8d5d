package extract

import "bytes"

// Record is one marker occurrence found in a decompressed buffer.
type Record struct {
	Offset   int    // Position of the marker in the buffer.
	Hex      []byte // Text between the marker and the terminator. Aliases the buffer.
	Complete bool   // False when no terminator follows the marker.
}

// Scan finds every occurrence of marker in buf, left to right.
//
// Occurrences are matched like a naive substring search: after a match at i
// the next candidate position is i+1, so overlapping markers are each
// reported. A marker that does not fit entirely inside buf never matches.
func Scan(buf, marker []byte, terminator byte) []Record {
	if len(marker) == 0 {
		return nil
	}

	var records []Record
	for pos := 0; pos+len(marker) <= len(buf); {
		k := bytes.Index(buf[pos:], marker)
		if k < 0 {
			break
		}
		i := pos + k
		start := i + len(marker)

		rec := Record{Offset: i}
		if j := bytes.IndexByte(buf[start:], terminator); j >= 0 {
			rec.Hex = buf[start : start+j]
			rec.Complete = true
		}
		records = append(records, rec)
		pos = i + 1
	}
	return records
}
