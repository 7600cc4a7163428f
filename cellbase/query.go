package cellbase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "cellbase-go"

// Options are query-string parameters forwarded to the REST service,
// e.g. {"limit": 10, "exclude": []string{"transcripts.exons"}}.
type Options map[string]any

// Query describes a single call: the path components and its options.
type Query struct {
	Category    string
	Subcategory string
	Resource    string
	ID          string
	Options     Options
}

// mergeOptions overlays call-specific options on top of defaults.
// A nil value in overrides removes the default.
func mergeOptions(defaults map[string]any, overrides Options) Options {
	out := make(Options, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// formatValue renders an option value the way the REST service expects it.
// Lists are sent as comma-separated values.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, ",")
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatValue(e)
		}
		return strings.Join(parts, ",")
	case []int:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = strconv.Itoa(e)
		}
		return strings.Join(parts, ",")
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Values converts the options to URL query values.
func (o Options) Values() url.Values {
	vals := make(url.Values, len(o))
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if o[k] == nil {
			continue
		}
		vals.Set(k, formatValue(o[k]))
	}
	return vals
}

// escapeID escapes an identifier for use as a path segment while keeping
// list separators readable (BRCA2,TP53 and 19:45411941:T:C stay as is).
func escapeID(id string) string {
	return strings.ReplaceAll(url.PathEscape(id), "%2C", ",")
}

// BuildURL returns the request URL for q:
//
//	<host>/<version>/<species>/<category>/<subcategory>/<resource>[/<id>]?<options>
//
// Empty segments are skipped, so meta endpoints can omit species and
// subcategory.
func BuildURL(host, version, species string, q Query) (string, error) {
	base := strings.TrimRight(host, "/")
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse host %q: %w", host, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("host %q is not an absolute URL", host)
	}
	if q.Category == "" {
		return "", fmt.Errorf("query category is required")
	}

	var b strings.Builder
	b.WriteString(base)
	for _, seg := range []string{version, species, q.Category, q.Subcategory, q.Resource} {
		if seg == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	if q.ID != "" {
		b.WriteByte('/')
		b.WriteString(escapeID(q.ID))
	}
	if enc := q.Options.Values().Encode(); enc != "" {
		b.WriteByte('?')
		b.WriteString(enc)
	}
	return b.String(), nil
}

// Transport issues HTTP requests against the REST service. It performs
// exactly one request per call: there is no retry and no caching.
type Transport struct {
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *Metrics
	userAgent  string
}

// NewTransport creates a transport. A nil httpClient uses
// http.DefaultClient, which has no timeout; bound requests with the context
// or pass a client with a Timeout. A nil logger disables logging.
func NewTransport(httpClient *http.Client, logger *zap.Logger, metrics *Metrics) *Transport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transport{
		httpClient: httpClient,
		logger:     logger,
		metrics:    metrics,
		userAgent:  DefaultUserAgent,
	}
}

var defaultTransport = NewTransport(nil, nil, nil)

// Get builds the URL for q and performs the request with the default transport.
func Get(ctx context.Context, host, version, species string, q Query) (*Response, error) {
	return defaultTransport.Get(ctx, host, version, species, q)
}

// Get builds the URL for q, performs the request and decodes the body.
// Non-2xx responses are returned as *HTTPError and network failures as
// *TransportError.
func (t *Transport) Get(ctx context.Context, host, version, species string, q Query) (*Response, error) {
	rawURL, err := BuildURL(host, version, species, q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.metrics.observe(q, 0, time.Since(start))
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	t.metrics.observe(q, resp.StatusCode, elapsed)
	t.logger.Debug("cellbase request",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        rawURL,
			Body:       body,
		}
	}

	return decodeResponse(rawURL, resp.Header.Get("Content-Type"), body)
}

func decodeResponse(rawURL, contentType string, body []byte) (*Response, error) {
	out := &Response{URL: rawURL, ContentType: contentType, Raw: body}
	if !isJSON(contentType, body) {
		return out, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", rawURL, err)
	}
	return out, nil
}

// isJSON reports whether a body should be decoded as the JSON envelope.
// Without a content type the body is sniffed for a leading '{'.
func isJSON(contentType string, body []byte) bool {
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err == nil {
			return mt == "application/json" || strings.HasSuffix(mt, "+json")
		}
	}
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "{")
}
