// Package idlist reads query IDs from plain or tab-delimited files.
package idlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads IDs from path, or stdin when path is "-".
//
// With an empty column the file holds one ID per line. Otherwise the first
// line is a tab-delimited header and IDs are read from the named column.
// Blank lines and lines starting with '#' are skipped, and duplicate IDs
// are dropped keeping the first occurrence.
func Load(path, column string) ([]string, error) {
	if path == "-" {
		return Read(os.Stdin, column)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open id list: %w", err)
	}
	defer f.Close()

	ids, err := Read(f, column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ids, nil
}

// Read reads IDs from r. See Load.
func Read(r io.Reader, column string) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	idx := -1
	if column != "" {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("read id list header: %w", err)
			}
			return nil, fmt.Errorf("id list: empty file")
		}
		header := strings.Split(strings.TrimPrefix(strings.TrimRight(scanner.Text(), "\r"), "#"), "\t")
		for i, col := range header {
			if strings.TrimSpace(col) == column {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("id list: missing %q column", column)
		}
	}

	var ids []string
	seen := make(map[string]struct{})
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		id := line
		if idx >= 0 {
			fields := strings.Split(line, "\t")
			if len(fields) <= idx {
				continue
			}
			id = fields[idx]
		}
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading id list: %w", err)
	}
	return ids, nil
}
