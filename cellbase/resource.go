package cellbase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/cellbase-go/config"
)

// Resource enumerates the entity kinds exposed by the REST service.
type Resource int

const (
	ResourceGene Resource = iota
	ResourceTranscript
	ResourceProtein
	ResourceVariation
	ResourceXref
	ResourceGenomicRegion
	ResourceVariant
	ResourceGenomeSequence
	ResourceClinical
	ResourceMeta
)

type resourceInfo struct {
	name        string
	category    string
	subcategory string
}

var resourceTable = [...]resourceInfo{
	ResourceGene:           {"gene", "feature", "gene"},
	ResourceTranscript:     {"transcript", "feature", "transcript"},
	ResourceProtein:        {"protein", "feature", "protein"},
	ResourceVariation:      {"variation", "feature", "variation"},
	ResourceXref:           {"xref", "feature", "id"},
	ResourceGenomicRegion:  {"genomic_region", "genomic", "region"},
	ResourceVariant:        {"variant", "genomic", "variant"},
	ResourceGenomeSequence: {"genome_sequence", "genomic", "chromosome"},
	ResourceClinical:       {"clinical", "feature", "clinical"},
	ResourceMeta:           {"meta", "meta", ""},
}

// Resources returns every resource kind.
func Resources() []Resource {
	out := make([]Resource, len(resourceTable))
	for i := range resourceTable {
		out[i] = Resource(i)
	}
	return out
}

func (r Resource) info() resourceInfo {
	if r < 0 || int(r) >= len(resourceTable) {
		panic(fmt.Sprintf("cellbase: unknown resource %d", int(r)))
	}
	return resourceTable[r]
}

func (r Resource) String() string {
	if r < 0 || int(r) >= len(resourceTable) {
		return "Resource(" + strconv.Itoa(int(r)) + ")"
	}
	return resourceTable[r].name
}

// Category returns the first path component of the resource.
func (r Resource) Category() string { return r.info().category }

// Subcategory returns the second path component of the resource, if any.
func (r Resource) Subcategory() string { return r.info().subcategory }

// resourceClient is bound to one category/subcategory pair and forwards
// every call to the shared transport using the shared configuration.
type resourceClient struct {
	config      *config.Client
	transport   *Transport
	category    string
	subcategory string
}

func (rc *resourceClient) query(resource, id string, opts Options) (config.Config, Query) {
	cfg := rc.config.Configuration()
	return cfg, Query{
		Category:    rc.category,
		Subcategory: rc.subcategory,
		Resource:    resource,
		ID:          id,
		Options:     mergeOptions(cfg.Options, opts),
	}
}

// Get queries an arbitrary resource of this client's category/subcategory.
func (rc *resourceClient) Get(ctx context.Context, resource, id string, opts Options) (*Response, error) {
	cfg, q := rc.query(resource, id, opts)
	return rc.transport.Get(ctx, cfg.Host, cfg.Version, cfg.Species, q)
}

// Batch queries resource for many IDs, splitting them across requests.
func (rc *resourceClient) Batch(ctx context.Context, resource string, ids []string, opts Options, batch BatchOptions) (*Response, error) {
	cfg, q := rc.query(resource, "", opts)
	return rc.transport.GetBatch(ctx, cfg.Host, cfg.Version, cfg.Species, q, ids, batch)
}

// getSpeciesless queries without the species path segment.
func (rc *resourceClient) getSpeciesless(ctx context.Context, resource, id string, opts Options) (*Response, error) {
	cfg, q := rc.query(resource, id, opts)
	return rc.transport.Get(ctx, cfg.Host, cfg.Version, "", q)
}

// Help returns the service's help text for this resource.
func (rc *resourceClient) Help(ctx context.Context) (*Response, error) {
	return rc.Get(ctx, "help", "", nil)
}

// Model returns the JSON schema of the data model served by this resource.
func (rc *resourceClient) Model(ctx context.Context) (*Response, error) {
	return rc.Get(ctx, "model", "", nil)
}

// Category returns the category the client is bound to.
func (rc *resourceClient) Category() string { return rc.category }

// Subcategory returns the subcategory the client is bound to.
func (rc *resourceClient) Subcategory() string { return rc.subcategory }

// featureClient adds the lookup methods shared by feature-like resources.
type featureClient struct {
	*resourceClient
}

// First returns the first entry of the collection.
func (fc featureClient) First(ctx context.Context, opts Options) (*Response, error) {
	return fc.Get(ctx, "first", "", opts)
}

// Search queries the collection with filters given as options,
// e.g. {"biotype": "protein_coding"}.
func (fc featureClient) Search(ctx context.Context, opts Options) (*Response, error) {
	return fc.Get(ctx, "search", "", opts)
}

// Info returns the entries for one or more IDs.
func (fc featureClient) Info(ctx context.Context, ids string, opts Options) (*Response, error) {
	return fc.Get(ctx, "info", ids, opts)
}

// Region is a genomic interval, 1-based and inclusive.
type Region struct {
	Chrom string
	Start int64
	End   int64
}

// String formats the region as chrom:start-end, or chrom alone when no
// coordinates are set.
func (r Region) String() string {
	if r.Start == 0 && r.End == 0 {
		return r.Chrom
	}
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

// ParseRegion parses chrom, chrom:pos or chrom:start-end.
func ParseRegion(s string) (Region, error) {
	chrom, coords, found := strings.Cut(strings.TrimSpace(s), ":")
	if chrom == "" {
		return Region{}, fmt.Errorf("invalid region %q: missing chromosome", s)
	}
	if !found {
		return Region{Chrom: chrom}, nil
	}
	startStr, endStr, hasEnd := strings.Cut(coords, "-")
	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 1 {
		return Region{}, fmt.Errorf("invalid region %q: bad start", s)
	}
	end := start
	if hasEnd {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < start {
			return Region{}, fmt.Errorf("invalid region %q: bad end", s)
		}
	}
	return Region{Chrom: chrom, Start: start, End: end}, nil
}

// JoinRegions formats regions as a comma-separated list.
func JoinRegions(regions ...Region) string {
	parts := make([]string, len(regions))
	for i, r := range regions {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}
