package output

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// DefaultColumns are used when no columns are given.
var DefaultColumns = []string{"id", "name"}

// TabWriter writes results in tab-delimited format, one row per result.
// The first column is the ID the result was queried with.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer over the given
// dotted field paths.
func NewTabWriter(w io.Writer, columns []string) *TabWriter {
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	return &TabWriter{
		w:       bufio.NewWriter(w),
		columns: columns,
	}
}

// Columns returns the field paths written per row.
func (tw *TabWriter) Columns() []string {
	return tw.columns
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString("#query\t" + strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single result.
func (tw *TabWriter) Write(queryID string, result json.RawMessage) error {
	if queryID == "" {
		queryID = Missing
	}
	values := make([]string, 0, len(tw.columns)+1)
	values = append(values, queryID)
	for _, col := range tw.columns {
		values = append(values, clean(Field(result, col)))
	}
	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// clean keeps a value on one tab-delimited row.
func clean(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}
