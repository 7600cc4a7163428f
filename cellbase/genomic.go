package cellbase

import "context"

// GenomicRegionClient queries genomic/region. Regions are given as a
// comma-separated list of chrom:start-end, see JoinRegions.
type GenomicRegionClient struct {
	*resourceClient
}

// Clinical returns the clinical variants in the regions.
func (c *GenomicRegionClient) Clinical(ctx context.Context, regions string, opts Options) (*Response, error) {
	return c.Get(ctx, "clinical", regions, opts)
}

// Conservation returns conservation scores over the regions.
func (c *GenomicRegionClient) Conservation(ctx context.Context, regions string, opts Options) (*Response, error) {
	return c.Get(ctx, "conservation", regions, opts)
}

// Genes returns the genes overlapping the regions.
func (c *GenomicRegionClient) Genes(ctx context.Context, regions string, opts Options) (*Response, error) {
	return c.Get(ctx, "gene", regions, opts)
}

// Regulatory returns the regulatory features in the regions.
func (c *GenomicRegionClient) Regulatory(ctx context.Context, regions string, opts Options) (*Response, error) {
	return c.Get(ctx, "regulatory", regions, opts)
}

// Sequence returns the reference sequence of each region.
func (c *GenomicRegionClient) Sequence(ctx context.Context, regions string, opts Options) (*Response, error) {
	return c.Get(ctx, "sequence", regions, opts)
}

// TFBS returns the transcription factor binding sites in the regions.
func (c *GenomicRegionClient) TFBS(ctx context.Context, regions string, opts Options) (*Response, error) {
	return c.Get(ctx, "tfbs", regions, opts)
}

// Transcripts returns the transcripts overlapping the regions.
func (c *GenomicRegionClient) Transcripts(ctx context.Context, regions string, opts Options) (*Response, error) {
	return c.Get(ctx, "transcript", regions, opts)
}

// Variations returns the known variants in the regions.
func (c *GenomicRegionClient) Variations(ctx context.Context, regions string, opts Options) (*Response, error) {
	return c.Get(ctx, "variation", regions, opts)
}

// Repeats returns the repeat elements in the regions.
func (c *GenomicRegionClient) Repeats(ctx context.Context, regions string, opts Options) (*Response, error) {
	return c.Get(ctx, "repeat", regions, opts)
}

// VariantClient queries genomic/variant. Variants are identified as
// chrom:pos:ref:alt, e.g. 19:45411941:T:C.
type VariantClient struct {
	*resourceClient
}

// Annotation returns the full variant annotation (consequence types,
// population frequencies, conservation, clinical data).
func (c *VariantClient) Annotation(ctx context.Context, variants string, opts Options) (*Response, error) {
	return c.Get(ctx, "annotation", variants, opts)
}

// AnnotationBatch annotates many variants, splitting them across requests.
func (c *VariantClient) AnnotationBatch(ctx context.Context, variants []string, opts Options, batch BatchOptions) (*Response, error) {
	return c.Batch(ctx, "annotation", variants, opts, batch)
}

// CADD returns CADD scores for each variant.
func (c *VariantClient) CADD(ctx context.Context, variants string, opts Options) (*Response, error) {
	return c.Get(ctx, "cadd", variants, opts)
}

// GenomeSequenceClient queries genomic/chromosome.
type GenomeSequenceClient struct {
	featureClient
}

// Cytobands returns the cytobands of each chromosome.
func (c *GenomeSequenceClient) Cytobands(ctx context.Context, chromosomes string, opts Options) (*Response, error) {
	return c.Get(ctx, "cytoband", chromosomes, opts)
}
