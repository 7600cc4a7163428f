package cellbase

import (
	"context"
	"strings"
	"sync"
)

// DefaultIDsPerCall is the number of IDs sent in one request by GetBatch.
const DefaultIDsPerCall = 100

// BatchOptions controls how GetBatch splits a list of IDs.
type BatchOptions struct {
	PerCall int // IDs per request; DefaultIDsPerCall if <= 0
	Workers int // concurrent requests; 1 if <= 0
}

// chunk is one request worth of IDs.
type chunk struct {
	Seq int
	IDs []string
}

// chunkResult holds the response for a single chunk.
type chunkResult struct {
	Seq  int
	Resp *Response
	Err  error
}

func splitIDs(ids []string, perCall int) []chunk {
	if perCall <= 0 {
		perCall = DefaultIDsPerCall
	}
	var out []chunk
	for start := 0; start < len(ids); start += perCall {
		end := min(start+perCall, len(ids))
		out = append(out, chunk{Seq: len(out), IDs: ids[start:end]})
	}
	return out
}

// GetBatch queries ids in chunks of opts.PerCall, joined with commas in the
// ID segment, and concatenates the responses in input order. With more than
// one worker the chunks are fetched concurrently. The first failing chunk
// cancels the remaining requests and its error is returned.
func (t *Transport) GetBatch(ctx context.Context, host, version, species string, q Query, ids []string, opts BatchOptions) (*Response, error) {
	chunks := splitIDs(ids, opts.PerCall)
	if len(chunks) == 0 {
		return t.Get(ctx, host, version, species, q)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	workers = min(workers, len(chunks))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	items := make(chan chunk, len(chunks))
	for _, c := range chunks {
		items <- c
	}
	close(items)

	results := make(chan chunkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				if err := ctx.Err(); err != nil {
					results <- chunkResult{Seq: item.Seq, Err: err}
					continue
				}
				cq := q
				cq.ID = strings.Join(item.IDs, ",")
				resp, err := t.Get(ctx, host, version, species, cq)
				results <- chunkResult{Seq: item.Seq, Resp: resp, Err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return collectChunks(results, len(chunks), cancel)
}

// collectChunks places each chunk response at its sequence number and
// merges them in input order once results is closed. The first error
// received, from any chunk, calls cancel so requests still in flight are
// aborted; that error is returned rather than the cancellations it causes.
func collectChunks(results <-chan chunkResult, n int, cancel context.CancelFunc) (*Response, error) {
	resps := make([]*Response, n)
	var firstErr error
	for r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
				cancel()
			}
			continue
		}
		resps[r.Seq] = r.Resp
	}
	if firstErr != nil {
		return nil, firstErr
	}

	merged := resps[0]
	for _, resp := range resps[1:] {
		merged.merge(resp)
	}
	return merged, nil
}
