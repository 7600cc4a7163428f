package cellbase

import (
	"encoding/json"
	"fmt"
)

// Event is a message attached to a response by the server.
type Event struct {
	Type    string `json:"type"`
	Code    int    `json:"code,omitempty"`
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// QueryResult holds the results for one queried ID.
type QueryResult struct {
	ID              string            `json:"id"`
	Time            int               `json:"time"`
	Events          []Event           `json:"events,omitempty"`
	NumResults      int               `json:"numResults"`
	NumMatches      int64             `json:"numMatches"`
	NumTotalResults int64             `json:"numTotalResults,omitempty"`
	ResultType      string            `json:"resultType,omitempty"`
	Results         []json.RawMessage `json:"results"`
}

// Response is the decoded body of a REST call. Results are kept as raw
// JSON: their structure is defined by the remote service. Bodies that are
// not JSON are only available through Raw.
type Response struct {
	Time       int            `json:"time"`
	APIVersion string         `json:"apiVersion"`
	Params     map[string]any `json:"params,omitempty"`
	Events     []Event        `json:"events,omitempty"`
	Warning    string         `json:"warning,omitempty"`
	Error      string         `json:"error,omitempty"`
	Responses  []QueryResult  `json:"responses"`

	URL         string `json:"-"`
	ContentType string `json:"-"`
	Raw         []byte `json:"-"`
}

// Results returns the results of every QueryResult in order.
func (r *Response) Results() []json.RawMessage {
	var out []json.RawMessage
	for _, qr := range r.Responses {
		out = append(out, qr.Results...)
	}
	return out
}

// Decode unmarshals all results into v, which must point to a slice.
func (r *Response) Decode(v any) error {
	results := r.Results()
	if results == nil {
		results = []json.RawMessage{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode results: %w", err)
	}
	return nil
}

// Errors returns the ERROR events of the response and of each result.
func (r *Response) Errors() []Event {
	var out []Event
	collect := func(events []Event) {
		for _, e := range events {
			if e.Type == "ERROR" {
				out = append(out, e)
			}
		}
	}
	collect(r.Events)
	for _, qr := range r.Responses {
		collect(qr.Events)
	}
	return out
}

// NumResults returns the total number of results across all QueryResults.
func (r *Response) NumResults() int {
	n := 0
	for _, qr := range r.Responses {
		n += len(qr.Results)
	}
	return n
}

// merge appends other to r, keeping r's header fields.
func (r *Response) merge(other *Response) {
	r.Time += other.Time
	r.Events = append(r.Events, other.Events...)
	r.Responses = append(r.Responses, other.Responses...)
	if len(other.Raw) > 0 {
		if len(r.Raw) > 0 {
			r.Raw = append(r.Raw, '\n')
		}
		r.Raw = append(r.Raw, other.Raw...)
	}
}
