package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Input is a buffered, decompressed view of a variant file.
type Input struct {
	*bufio.Reader
	closers []io.Closer
}

// OpenInput opens path for reading; "-" reads stdin.
// Gzipped content is detected from its magic bytes.
func OpenInput(path string) (*Input, error) {
	if path == "-" {
		return NewInput(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	in, err := NewInput(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	in.closers = append(in.closers, file)
	return in, nil
}

// NewInput wraps r, decompressing it if it is gzipped.
func NewInput(r io.Reader) (*Input, error) {
	br := bufio.NewReader(r)
	in := &Input{Reader: br}

	// Check for gzip magic number (0x1f, 0x8b)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		in.Reader = bufio.NewReader(gz)
		in.closers = append(in.closers, gz)
	}
	return in, nil
}

// ReadLine returns the next line without its terminator, or io.EOF.
// A final line without a newline is returned before io.EOF.
func (in *Input) ReadLine() (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close closes the gzip stream and file, if any.
func (in *Input) Close() error {
	var first error
	for _, c := range in.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	in.closers = nil
	return first
}
