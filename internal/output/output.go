// Package output writes CellBase query results as tab-delimited rows or
// JSON lines.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ResultWriter writes results one at a time.
type ResultWriter interface {
	WriteHeader() error
	Write(queryID string, result json.RawMessage) error
	Flush() error
}

// Missing is written for fields absent from a result.
const Missing = "-"

// Field extracts a dotted path such as "transcripts.id" from a JSON result.
// Numeric segments index into arrays; other segments applied to an array
// are mapped over its elements and the values joined with ','.
func Field(result json.RawMessage, path string) string {
	dec := json.NewDecoder(bytes.NewReader(result))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Missing
	}
	var segs []string
	if path != "" {
		segs = strings.Split(path, ".")
	}
	vals := lookup(v, segs)
	if len(vals) == 0 {
		return Missing
	}
	return strings.Join(vals, ",")
}

func lookup(v any, segs []string) []string {
	if v == nil {
		return nil
	}
	if len(segs) == 0 {
		switch x := v.(type) {
		case []any:
			var out []string
			for _, e := range x {
				out = append(out, lookup(e, nil)...)
			}
			return out
		default:
			return []string{scalar(x)}
		}
	}

	switch x := v.(type) {
	case map[string]any:
		child, ok := x[segs[0]]
		if !ok {
			return nil
		}
		return lookup(child, segs[1:])
	case []any:
		if i, err := strconv.Atoi(segs[0]); err == nil {
			if i < 0 || i >= len(x) {
				return nil
			}
			return lookup(x[i], segs[1:])
		}
		var out []string
		for _, e := range x {
			out = append(out, lookup(e, segs)...)
		}
		return out
	}
	return nil
}

func scalar(v any) string {
	switch x := v.(type) {
	case string:
		if x == "" {
			return Missing
		}
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
