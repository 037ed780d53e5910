package vectors

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Writer writes embedding vectors as CSV, one vector per row.
type Writer struct {
	w    *csv.Writer
	rows int
	buf  []string
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// Write appends one row. Values use the shortest representation that
// round-trips.
func (w *Writer) Write(vec []float64) error {
	w.buf = w.buf[:0]
	for _, v := range vec {
		w.buf = append(w.buf, strconv.FormatFloat(v, 'g', -1, 64))
	}
	if err := w.w.Write(w.buf); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Rows returns the number of rows written.
func (w *Writer) Rows() int { return w.rows }

// Flush writes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
