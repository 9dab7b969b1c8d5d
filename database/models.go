package database

// A row returned by the source query.
type Row struct {
	Title   string // Display title, used to name the extracted files.
	Payload []byte // Compressed blob. Nil when the column is NULL.
}
