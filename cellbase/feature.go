package cellbase

import "context"

// GeneClient queries feature/gene.
type GeneClient struct {
	featureClient
}

// Biotypes lists the distinct gene biotypes.
func (c *GeneClient) Biotypes(ctx context.Context, opts Options) (*Response, error) {
	return c.Get(ctx, "biotype", "", opts)
}

// List returns gene IDs matching the filters in opts.
func (c *GeneClient) List(ctx context.Context, opts Options) (*Response, error) {
	return c.Get(ctx, "list", "", opts)
}

// Transcripts returns the transcripts of the given genes.
func (c *GeneClient) Transcripts(ctx context.Context, genes string, opts Options) (*Response, error) {
	return c.Get(ctx, "transcript", genes, opts)
}

// Proteins returns the proteins encoded by the given genes.
func (c *GeneClient) Proteins(ctx context.Context, genes string, opts Options) (*Response, error) {
	return c.Get(ctx, "protein", genes, opts)
}

// TFBS returns transcription factor binding sites of the given genes.
func (c *GeneClient) TFBS(ctx context.Context, genes string, opts Options) (*Response, error) {
	return c.Get(ctx, "tfbs", genes, opts)
}

// Variations returns known variants (SNPs) within the given genes.
func (c *GeneClient) Variations(ctx context.Context, genes string, opts Options) (*Response, error) {
	return c.Get(ctx, "snp", genes, opts)
}

// Clinical returns clinical variants within the given genes.
func (c *GeneClient) Clinical(ctx context.Context, genes string, opts Options) (*Response, error) {
	return c.Get(ctx, "clinical", genes, opts)
}

// Regulatory returns regulatory features of the given genes.
func (c *GeneClient) Regulatory(ctx context.Context, genes string, opts Options) (*Response, error) {
	return c.Get(ctx, "regulatory", genes, opts)
}

// TranscriptClient queries feature/transcript.
type TranscriptClient struct {
	featureClient
}

// Gene returns the gene each transcript belongs to.
func (c *TranscriptClient) Gene(ctx context.Context, transcripts string, opts Options) (*Response, error) {
	return c.Get(ctx, "gene", transcripts, opts)
}

// Protein returns the protein encoded by each transcript.
func (c *TranscriptClient) Protein(ctx context.Context, transcripts string, opts Options) (*Response, error) {
	return c.Get(ctx, "protein", transcripts, opts)
}

// Sequence returns the cDNA sequence of each transcript.
func (c *TranscriptClient) Sequence(ctx context.Context, transcripts string, opts Options) (*Response, error) {
	return c.Get(ctx, "sequence", transcripts, opts)
}

// Variations returns known variants overlapping each transcript.
func (c *TranscriptClient) Variations(ctx context.Context, transcripts string, opts Options) (*Response, error) {
	return c.Get(ctx, "variation", transcripts, opts)
}

// FunctionPrediction returns SIFT/PolyPhen predictions for each transcript.
func (c *TranscriptClient) FunctionPrediction(ctx context.Context, transcripts string, opts Options) (*Response, error) {
	return c.Get(ctx, "function_prediction", transcripts, opts)
}

// ProteinClient queries feature/protein.
type ProteinClient struct {
	featureClient
}

// SubstitutionScores returns amino acid substitution scores for each protein.
func (c *ProteinClient) SubstitutionScores(ctx context.Context, proteins string, opts Options) (*Response, error) {
	return c.Get(ctx, "substitution_scores", proteins, opts)
}

// Sequence returns the amino acid sequence of each protein.
func (c *ProteinClient) Sequence(ctx context.Context, proteins string, opts Options) (*Response, error) {
	return c.Get(ctx, "sequence", proteins, opts)
}

// VariationClient queries feature/variation.
type VariationClient struct {
	featureClient
}

// ConsequenceTypes lists all Sequence Ontology consequence types.
func (c *VariationClient) ConsequenceTypes(ctx context.Context, opts Options) (*Response, error) {
	return c.Get(ctx, "consequence_types", "", opts)
}

// ConsequenceType returns the consequence type of each variation.
func (c *VariationClient) ConsequenceType(ctx context.Context, variations string, opts Options) (*Response, error) {
	return c.Get(ctx, "consequence_type", variations, opts)
}

// XrefClient queries feature/id, the cross-reference service.
type XrefClient struct {
	*resourceClient
}

// Xrefs returns all cross-references of each ID.
func (c *XrefClient) Xrefs(ctx context.Context, ids string, opts Options) (*Response, error) {
	return c.Get(ctx, "xref", ids, opts)
}

// Gene returns the genes referenced by each ID.
func (c *XrefClient) Gene(ctx context.Context, ids string, opts Options) (*Response, error) {
	return c.Get(ctx, "gene", ids, opts)
}

// Contains returns IDs containing the given text.
func (c *XrefClient) Contains(ctx context.Context, text string, opts Options) (*Response, error) {
	return c.Get(ctx, "contains", text, opts)
}

// StartsWith returns IDs starting with the given prefix.
func (c *XrefClient) StartsWith(ctx context.Context, prefix string, opts Options) (*Response, error) {
	return c.Get(ctx, "starts_with", prefix, opts)
}

// ClinicalClient queries feature/clinical.
type ClinicalClient struct {
	*resourceClient
}

// Search queries clinical variants with filters given as options,
// e.g. {"gene": "BRCA2", "clinicalSignificance": "pathogenic"}.
func (c *ClinicalClient) Search(ctx context.Context, opts Options) (*Response, error) {
	return c.Get(ctx, "search", "", opts)
}

// AlleleOriginLabels lists the allele origin labels in use.
func (c *ClinicalClient) AlleleOriginLabels(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "allele_origin_labels", "", nil)
}

// ClinsigLabels lists the clinical significance labels in use.
func (c *ClinicalClient) ClinsigLabels(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "clinsig_labels", "", nil)
}

// ConsistencyLabels lists the consistency status labels in use.
func (c *ClinicalClient) ConsistencyLabels(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "consistency_labels", "", nil)
}

// ModeInheritanceLabels lists the mode of inheritance labels in use.
func (c *ClinicalClient) ModeInheritanceLabels(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "mode_inheritance_labels", "", nil)
}

// VariantTypes lists the variant types in use.
func (c *ClinicalClient) VariantTypes(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "variant_types", "", nil)
}
