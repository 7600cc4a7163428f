package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONLWriter writes each result as one compact JSON object per line.
type JSONLWriter struct {
	w   *bufio.Writer
	buf bytes.Buffer
}

// NewJSONLWriter creates a new JSON-lines writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{w: bufio.NewWriter(w)}
}

// WriteHeader is a no-op: JSON lines have no header.
func (jw *JSONLWriter) WriteHeader() error {
	return nil
}

// Write writes a single result. The query ID is not part of the line.
func (jw *JSONLWriter) Write(_ string, result json.RawMessage) error {
	jw.buf.Reset()
	if err := json.Compact(&jw.buf, result); err != nil {
		return fmt.Errorf("compact result: %w", err)
	}
	jw.buf.WriteByte('\n')
	_, err := jw.w.Write(jw.buf.Bytes())
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (jw *JSONLWriter) Flush() error {
	return jw.w.Flush()
}
