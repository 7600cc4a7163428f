package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/cellbase-go/cellbase"
)

// RunInfo identifies one exported query.
type RunInfo struct {
	ID          string
	Category    string
	Subcategory string
	Resource    string
	QueryID     string
	Species     string
	FetchedAt   time.Time
}

// NewRun returns a RunInfo with a fresh ID and the current time.
func NewRun(species string, q cellbase.Query) RunInfo {
	return RunInfo{
		ID:          uuid.NewString(),
		Category:    q.Category,
		Subcategory: q.Subcategory,
		Resource:    q.Resource,
		QueryID:     q.ID,
		Species:     species,
		FetchedAt:   time.Now().UTC(),
	}
}

// StoredResult is one result row read back from the store.
type StoredResult struct {
	RunID         string
	URL           string
	QueryID       string
	ResponseIndex int64
	ResultIndex   int64
	NumMatches    int64
	Payload       string
}

// RunSummary describes an exported run.
type RunSummary struct {
	ID          string
	Category    string
	Subcategory string
	Resource    string
	Species     string
	Results     int64
	FetchedAt   time.Time
}

// WriteResponse appends every result of resp as one row and returns the
// number of rows written. The query ID of each row is the ID the server
// reports for that result set, falling back to run.QueryID.
func (s *Store) WriteResponse(run RunInfo, resp *cellbase.Response) (int, error) {
	if resp == nil || resp.NumResults() == 0 {
		return 0, nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return 0, fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "query_results")
		return err
	}); err != nil {
		return 0, fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	fetchedAt := run.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	n := 0
	for i, qr := range resp.Responses {
		queryID := qr.ID
		if queryID == "" {
			queryID = run.QueryID
		}
		for j, result := range qr.Results {
			if err := appender.AppendRow(
				run.ID, resp.URL, run.Category, run.Subcategory, run.Resource,
				queryID, run.Species, int64(i), int64(j), qr.NumMatches,
				string(result), fetchedAt,
			); err != nil {
				return n, fmt.Errorf("append query result: %w", err)
			}
			n++
		}
	}

	if err := appender.Flush(); err != nil {
		return n, fmt.Errorf("flush query results: %w", err)
	}
	return n, nil
}

// Results returns the rows of one run in response order.
func (s *Store) Results(runID string) ([]StoredResult, error) {
	rows, err := s.db.Query(`SELECT
		run_id, url, query_id, response_index, result_index, num_matches, payload
		FROM query_results
		WHERE run_id=?
		ORDER BY response_index, result_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []StoredResult
	for rows.Next() {
		var r StoredResult
		if err := rows.Scan(&r.RunID, &r.URL, &r.QueryID, &r.ResponseIndex, &r.ResultIndex, &r.NumMatches, &r.Payload); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

// Runs lists exported runs, oldest first.
func (s *Store) Runs() ([]RunSummary, error) {
	rows, err := s.db.Query(`SELECT
		run_id, category, subcategory, resource, species, count(*), min(fetched_at)
		FROM query_results
		GROUP BY run_id, category, subcategory, resource, species
		ORDER BY min(fetched_at), run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Category, &r.Subcategory, &r.Resource, &r.Species, &r.Results, &r.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

// DeleteRun removes the rows of one run.
func (s *Store) DeleteRun(runID string) error {
	_, err := s.db.Exec("DELETE FROM query_results WHERE run_id=?", runID)
	return err
}

// Clear removes all exported results.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM query_results")
	return err
}
