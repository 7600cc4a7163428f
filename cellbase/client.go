package cellbase

import (
	"context"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/inodb/cellbase-go/config"
)

// Client creates the resource clients and allows direct queries to the
// REST service. Resource clients are created on first access and reused
// afterwards; all of them share the Client's configuration.
type Client struct {
	config    *config.Client
	transport *Transport

	mu      sync.Mutex
	clients map[Resource]any
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.transport.httpClient = hc
		}
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.transport.logger = l
		}
	}
}

// WithMetrics registers request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.transport.metrics = NewMetrics(reg)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.transport.userAgent = ua
	}
}

// New creates a client. A nil cfg uses the default configuration.
func New(cfg *config.Client, opts ...Option) (*Client, error) {
	if cfg == nil {
		var err error
		cfg, err = config.New(nil)
		if err != nil {
			return nil, err
		}
	} else if err := cfg.Configuration().Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:    cfg,
		transport: NewTransport(nil, nil, nil),
		clients:   make(map[Resource]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ShowConfiguration returns the current configuration parameters.
func (c *Client) ShowConfiguration() config.Config {
	return c.config.Configuration()
}

// DefaultConfiguration returns the default configuration parameters.
func (c *Client) DefaultConfiguration() config.Config {
	return c.config.DefaultConfiguration()
}

// Config returns the shared configuration holder.
func (c *Client) Config() *config.Client {
	return c.config
}

// Get queries category/subcategory/resource[/id] directly. opts are merged
// over the configured default options.
func (c *Client) Get(ctx context.Context, category, subcategory, resource, id string, opts Options) (*Response, error) {
	cfg := c.config.Configuration()
	return c.transport.Get(ctx, cfg.Host, cfg.Version, cfg.Species, Query{
		Category:    category,
		Subcategory: subcategory,
		Resource:    resource,
		ID:          id,
		Options:     mergeOptions(cfg.Options, opts),
	})
}

// GetBatch queries category/subcategory/resource for many IDs, splitting
// them across requests as described by batch.
func (c *Client) GetBatch(ctx context.Context, category, subcategory, resource string, ids []string, opts Options, batch BatchOptions) (*Response, error) {
	cfg := c.config.Configuration()
	return c.transport.GetBatch(ctx, cfg.Host, cfg.Version, cfg.Species, Query{
		Category:    category,
		Subcategory: subcategory,
		Resource:    resource,
		Options:     mergeOptions(cfg.Options, opts),
	}, ids, batch)
}

// memo returns the client stored for r, building it on first use.
func memo[T any](c *Client, r Resource, build func(*resourceClient) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.clients[r]; ok {
		return existing.(T)
	}
	info := r.info()
	created := build(&resourceClient{
		config:      c.config,
		transport:   c.transport,
		category:    info.category,
		subcategory: info.subcategory,
	})
	c.clients[r] = created
	return created
}

// GeneClient returns the gene client.
func (c *Client) GeneClient() *GeneClient {
	return memo(c, ResourceGene, func(rc *resourceClient) *GeneClient {
		return &GeneClient{featureClient{rc}}
	})
}

// TranscriptClient returns the transcript client.
func (c *Client) TranscriptClient() *TranscriptClient {
	return memo(c, ResourceTranscript, func(rc *resourceClient) *TranscriptClient {
		return &TranscriptClient{featureClient{rc}}
	})
}

// ProteinClient returns the protein client.
func (c *Client) ProteinClient() *ProteinClient {
	return memo(c, ResourceProtein, func(rc *resourceClient) *ProteinClient {
		return &ProteinClient{featureClient{rc}}
	})
}

// VariationClient returns the variation client.
func (c *Client) VariationClient() *VariationClient {
	return memo(c, ResourceVariation, func(rc *resourceClient) *VariationClient {
		return &VariationClient{featureClient{rc}}
	})
}

// XrefClient returns the cross-reference client.
func (c *Client) XrefClient() *XrefClient {
	return memo(c, ResourceXref, func(rc *resourceClient) *XrefClient {
		return &XrefClient{rc}
	})
}

// GenomicRegionClient returns the genomic region client.
func (c *Client) GenomicRegionClient() *GenomicRegionClient {
	return memo(c, ResourceGenomicRegion, func(rc *resourceClient) *GenomicRegionClient {
		return &GenomicRegionClient{rc}
	})
}

// VariantClient returns the variant client.
func (c *Client) VariantClient() *VariantClient {
	return memo(c, ResourceVariant, func(rc *resourceClient) *VariantClient {
		return &VariantClient{rc}
	})
}

// GenomeSequenceClient returns the genome sequence client.
func (c *Client) GenomeSequenceClient() *GenomeSequenceClient {
	return memo(c, ResourceGenomeSequence, func(rc *resourceClient) *GenomeSequenceClient {
		return &GenomeSequenceClient{featureClient{rc}}
	})
}

// ClinicalClient returns the clinical client.
func (c *Client) ClinicalClient() *ClinicalClient {
	return memo(c, ResourceClinical, func(rc *resourceClient) *ClinicalClient {
		return &ClinicalClient{rc}
	})
}

// MetaClient returns the meta client.
func (c *Client) MetaClient() *MetaClient {
	return memo(c, ResourceMeta, func(rc *resourceClient) *MetaClient {
		return &MetaClient{rc}
	})
}
