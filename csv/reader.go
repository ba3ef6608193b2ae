package csv

import (
	"encoding/csv"
	"errors"
	"io"

	"hermannm.dev/wrap"
)

// Reader reads rows from a CSV file, deducing the field delimiter from the
// file's content. It implements dataset.DataSource: the first row returned
// is the file's header row.
type Reader struct {
	inner      *csv.Reader
	file       io.ReadSeeker
	currentRow int
}

func NewReader(csvFile io.ReadSeeker) (*Reader, error) {
	delimiter, err := DeduceFieldDelimiter(csvFile, 20)
	if err != nil {
		return nil, wrap.Error(err, "failed to deduce CSV field delimiter")
	}

	return &Reader{inner: newInnerReader(csvFile, delimiter), file: csvFile}, nil
}

func newInnerReader(csvFile io.ReadSeeker, delimiter rune) *csv.Reader {
	reader := csv.NewReader(csvFile)
	reader.Comma = delimiter
	// Superstore exports sometimes vary in trailing fields; the schema layer
	// decides what to keep, so don't error on field count here.
	reader.FieldsPerRecord = -1
	return reader
}

// ReadRow reads the next row of the file. Row numbers start at 1 for the
// header row. Returns done = true after the last row.
func (reader *Reader) ReadRow() (row []string, rowNumber int, done bool, err error) {
	reader.currentRow++

	row, err = reader.inner.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, true, nil
		}
		return nil, 0, false, err
	}

	return row, reader.currentRow, false, nil
}

// ResetReadPosition seeks back to the start of the file, so that its rows can
// be read again.
func (reader *Reader) ResetReadPosition() error {
	if _, err := reader.file.Seek(0, io.SeekStart); err != nil {
		return wrap.Error(err, "failed to seek to start of CSV file")
	}

	reader.currentRow = 0
	reader.inner = newInnerReader(reader.file, reader.inner.Comma)
	return nil
}
