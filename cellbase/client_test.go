package cellbase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/cellbase-go/config"
)

// recorder is a test server that records request paths and query strings
// and answers with a one-result envelope.
type recorder struct {
	mu      sync.Mutex
	paths   []string
	queries []string
	agents  []string
	body    string
	status  int
	srv     *httptest.Server
}

func newRecorder(t *testing.T) *recorder {
	t.Helper()
	rec := &recorder{
		status: http.StatusOK,
		body:   `{"apiVersion":"v5","time":3,"responses":[{"id":"x","numResults":1,"numMatches":1,"results":[{"id":"ENSG00000139618","name":"BRCA2"}]}]}`,
	}
	rec.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.paths = append(rec.paths, r.URL.Path)
		rec.queries = append(rec.queries, r.URL.RawQuery)
		rec.agents = append(rec.agents, r.Header.Get("User-Agent"))
		status, body := rec.status, rec.body
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(rec.srv.Close)
	return rec
}

func (rec *recorder) lastPath() string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.paths) == 0 {
		return ""
	}
	return rec.paths[len(rec.paths)-1]
}

func (rec *recorder) lastQuery() string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.queries) == 0 {
		return ""
	}
	return rec.queries[len(rec.queries)-1]
}

func (rec *recorder) count() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.paths)
}

func newTestClient(t *testing.T, host string) *Client {
	t.Helper()
	cfg, err := config.New(&config.Config{Host: host, Version: "v5", Species: "hsapiens"})
	require.NoError(t, err)
	cb, err := New(cfg)
	require.NoError(t, err)
	return cb
}

func TestNew_DefaultConfiguration(t *testing.T) {
	cb, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cb.ShowConfiguration())
	assert.Equal(t, config.Default(), cb.DefaultConfiguration())
}

func TestNew_ShowConfigurationMatchesInput(t *testing.T) {
	in := config.Config{
		Host:    "http://localhost:9090/cellbase/webservices/rest",
		Version: "v4",
		Species: "mmusculus",
		Options: map[string]any{"limit": 10},
	}
	cfg, err := config.New(&in)
	require.NoError(t, err)

	cb, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, in, cb.ShowConfiguration())
	assert.Same(t, cfg, cb.Config())
}

func TestNew_InvalidConfigurationCreatesNoClient(t *testing.T) {
	// A zero config.Client has an empty configuration.
	cb, err := New(&config.Client{})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Nil(t, cb)
}

func TestAccessors_Memoized(t *testing.T) {
	cb, err := New(nil)
	require.NoError(t, err)

	assert.Same(t, cb.GeneClient(), cb.GeneClient())
	assert.Same(t, cb.TranscriptClient(), cb.TranscriptClient())
	assert.Same(t, cb.ProteinClient(), cb.ProteinClient())
	assert.Same(t, cb.VariationClient(), cb.VariationClient())
	assert.Same(t, cb.XrefClient(), cb.XrefClient())
	assert.Same(t, cb.GenomicRegionClient(), cb.GenomicRegionClient())
	assert.Same(t, cb.VariantClient(), cb.VariantClient())
	assert.Same(t, cb.GenomeSequenceClient(), cb.GenomeSequenceClient())
	assert.Same(t, cb.ClinicalClient(), cb.ClinicalClient())
	assert.Same(t, cb.MetaClient(), cb.MetaClient())
	assert.Len(t, cb.clients, len(Resources()))
}

func TestAccessors_DistinctButShareConfig(t *testing.T) {
	cb, err := New(nil)
	require.NoError(t, err)

	bases := []*resourceClient{
		cb.GeneClient().resourceClient,
		cb.TranscriptClient().resourceClient,
		cb.ProteinClient().resourceClient,
		cb.VariationClient().resourceClient,
		cb.XrefClient().resourceClient,
		cb.GenomicRegionClient().resourceClient,
		cb.VariantClient().resourceClient,
		cb.GenomeSequenceClient().resourceClient,
		cb.ClinicalClient().resourceClient,
		cb.MetaClient().resourceClient,
	}
	for i := range bases {
		assert.Same(t, cb.config, bases[i].config, "resource %s", Resource(i))
		for j := i + 1; j < len(bases); j++ {
			assert.NotSame(t, bases[i], bases[j], "%s and %s", Resource(i), Resource(j))
		}
	}
}

func TestAccessors_SeparateFacades(t *testing.T) {
	a, err := New(nil)
	require.NoError(t, err)
	b, err := New(nil)
	require.NoError(t, err)
	assert.NotSame(t, a.GeneClient(), b.GeneClient())
}

func TestAccessors_ConcurrentFirstAccess(t *testing.T) {
	cb, err := New(nil)
	require.NoError(t, err)

	const n = 32
	got := make([]*GeneClient, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func() {
			defer wg.Done()
			got[i] = cb.GeneClient()
		}()
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, got[0], got[i])
	}
}

func TestGet_BuildsPathAndForwardsOptions(t *testing.T) {
	rec := newRecorder(t)
	cb := newTestClient(t, rec.srv.URL)

	resp, err := cb.Get(context.Background(), "feature", "gene", "info", "BRCA2", Options{"include": "id,name", "limit": 5})
	require.NoError(t, err)

	assert.Equal(t, "/v5/hsapiens/feature/gene/info/BRCA2", rec.lastPath())
	assert.Equal(t, "include=id%2Cname&limit=5", rec.lastQuery())
	assert.Equal(t, "v5", resp.APIVersion)
	require.Len(t, resp.Results(), 1)
}

func TestGet_DefaultOptionsMerged(t *testing.T) {
	rec := newRecorder(t)
	cfg, err := config.New(&config.Config{
		Host: rec.srv.URL, Version: "v5", Species: "hsapiens",
		Options: map[string]any{"limit": 10, "skipCount": true},
	})
	require.NoError(t, err)
	cb, err := New(cfg)
	require.NoError(t, err)

	_, err = cb.Get(context.Background(), "feature", "gene", "search", "", Options{"limit": 2, "skipCount": nil})
	require.NoError(t, err)
	assert.Equal(t, "limit=2", rec.lastQuery())
}

func TestReconfigurationVisibleToExistingClients(t *testing.T) {
	rec := newRecorder(t)
	cb := newTestClient(t, rec.srv.URL)
	genes := cb.GeneClient()

	require.NoError(t, cb.Config().SetSpecies("mmusculus"))
	_, err := genes.Info(context.Background(), "Brca2", nil)
	require.NoError(t, err)
	assert.Equal(t, "/v5/mmusculus/feature/gene/info/Brca2", rec.lastPath())
}

func TestWithUserAgent(t *testing.T) {
	rec := newRecorder(t)
	cfg, err := config.New(&config.Config{Host: rec.srv.URL, Version: "v5", Species: "hsapiens"})
	require.NoError(t, err)
	cb, err := New(cfg, WithUserAgent("pipeline/1.0"), WithHTTPClient(rec.srv.Client()), WithLogger(nil))
	require.NoError(t, err)

	_, err = cb.MetaClient().Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"pipeline/1.0"}, rec.agents)
}
