package cellbase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceClients_Paths(t *testing.T) {
	rec := newRecorder(t)
	cb := newTestClient(t, rec.srv.URL)

	tests := []struct {
		name string
		call func(ctx context.Context) (*Response, error)
		want string
	}{
		{"gene info", func(ctx context.Context) (*Response, error) { return cb.GeneClient().Info(ctx, "BRCA2", nil) }, "/v5/hsapiens/feature/gene/info/BRCA2"},
		{"gene search", func(ctx context.Context) (*Response, error) { return cb.GeneClient().Search(ctx, nil) }, "/v5/hsapiens/feature/gene/search"},
		{"gene first", func(ctx context.Context) (*Response, error) { return cb.GeneClient().First(ctx, nil) }, "/v5/hsapiens/feature/gene/first"},
		{"gene biotypes", func(ctx context.Context) (*Response, error) { return cb.GeneClient().Biotypes(ctx, nil) }, "/v5/hsapiens/feature/gene/biotype"},
		{"gene list", func(ctx context.Context) (*Response, error) { return cb.GeneClient().List(ctx, nil) }, "/v5/hsapiens/feature/gene/list"},
		{"gene transcripts", func(ctx context.Context) (*Response, error) { return cb.GeneClient().Transcripts(ctx, "BRCA2,TP53", nil) }, "/v5/hsapiens/feature/gene/transcript/BRCA2,TP53"},
		{"gene proteins", func(ctx context.Context) (*Response, error) { return cb.GeneClient().Proteins(ctx, "BRCA2", nil) }, "/v5/hsapiens/feature/gene/protein/BRCA2"},
		{"gene tfbs", func(ctx context.Context) (*Response, error) { return cb.GeneClient().TFBS(ctx, "BRCA2", nil) }, "/v5/hsapiens/feature/gene/tfbs/BRCA2"},
		{"gene snp", func(ctx context.Context) (*Response, error) { return cb.GeneClient().Variations(ctx, "BRCA2", nil) }, "/v5/hsapiens/feature/gene/snp/BRCA2"},
		{"gene clinical", func(ctx context.Context) (*Response, error) { return cb.GeneClient().Clinical(ctx, "BRCA2", nil) }, "/v5/hsapiens/feature/gene/clinical/BRCA2"},
		{"gene regulatory", func(ctx context.Context) (*Response, error) { return cb.GeneClient().Regulatory(ctx, "BRCA2", nil) }, "/v5/hsapiens/feature/gene/regulatory/BRCA2"},
		{"gene help", func(ctx context.Context) (*Response, error) { return cb.GeneClient().Help(ctx) }, "/v5/hsapiens/feature/gene/help"},
		{"gene model", func(ctx context.Context) (*Response, error) { return cb.GeneClient().Model(ctx) }, "/v5/hsapiens/feature/gene/model"},

		{"transcript info", func(ctx context.Context) (*Response, error) { return cb.TranscriptClient().Info(ctx, "ENST00000380152", nil) }, "/v5/hsapiens/feature/transcript/info/ENST00000380152"},
		{"transcript gene", func(ctx context.Context) (*Response, error) { return cb.TranscriptClient().Gene(ctx, "ENST00000380152", nil) }, "/v5/hsapiens/feature/transcript/gene/ENST00000380152"},
		{"transcript protein", func(ctx context.Context) (*Response, error) { return cb.TranscriptClient().Protein(ctx, "ENST00000380152", nil) }, "/v5/hsapiens/feature/transcript/protein/ENST00000380152"},
		{"transcript sequence", func(ctx context.Context) (*Response, error) { return cb.TranscriptClient().Sequence(ctx, "ENST00000380152", nil) }, "/v5/hsapiens/feature/transcript/sequence/ENST00000380152"},
		{"transcript variation", func(ctx context.Context) (*Response, error) { return cb.TranscriptClient().Variations(ctx, "ENST00000380152", nil) }, "/v5/hsapiens/feature/transcript/variation/ENST00000380152"},
		{"transcript function prediction", func(ctx context.Context) (*Response, error) {
			return cb.TranscriptClient().FunctionPrediction(ctx, "ENST00000380152", nil)
		}, "/v5/hsapiens/feature/transcript/function_prediction/ENST00000380152"},

		{"protein info", func(ctx context.Context) (*Response, error) { return cb.ProteinClient().Info(ctx, "P51587", nil) }, "/v5/hsapiens/feature/protein/info/P51587"},
		{"protein substitution scores", func(ctx context.Context) (*Response, error) { return cb.ProteinClient().SubstitutionScores(ctx, "P51587", nil) }, "/v5/hsapiens/feature/protein/substitution_scores/P51587"},
		{"protein sequence", func(ctx context.Context) (*Response, error) { return cb.ProteinClient().Sequence(ctx, "P51587", nil) }, "/v5/hsapiens/feature/protein/sequence/P51587"},

		{"variation info", func(ctx context.Context) (*Response, error) { return cb.VariationClient().Info(ctx, "rs666", nil) }, "/v5/hsapiens/feature/variation/info/rs666"},
		{"variation consequence types", func(ctx context.Context) (*Response, error) { return cb.VariationClient().ConsequenceTypes(ctx, nil) }, "/v5/hsapiens/feature/variation/consequence_types"},
		{"variation consequence type", func(ctx context.Context) (*Response, error) { return cb.VariationClient().ConsequenceType(ctx, "rs666", nil) }, "/v5/hsapiens/feature/variation/consequence_type/rs666"},

		{"xref", func(ctx context.Context) (*Response, error) { return cb.XrefClient().Xrefs(ctx, "BRCA2", nil) }, "/v5/hsapiens/feature/id/xref/BRCA2"},
		{"xref gene", func(ctx context.Context) (*Response, error) { return cb.XrefClient().Gene(ctx, "BRCA2", nil) }, "/v5/hsapiens/feature/id/gene/BRCA2"},
		{"xref contains", func(ctx context.Context) (*Response, error) { return cb.XrefClient().Contains(ctx, "BRC", nil) }, "/v5/hsapiens/feature/id/contains/BRC"},
		{"xref starts with", func(ctx context.Context) (*Response, error) { return cb.XrefClient().StartsWith(ctx, "BRC", nil) }, "/v5/hsapiens/feature/id/starts_with/BRC"},

		{"region genes", func(ctx context.Context) (*Response, error) { return cb.GenomicRegionClient().Genes(ctx, "13:32315474-32400266", nil) }, "/v5/hsapiens/genomic/region/gene/13:32315474-32400266"},
		{"region clinical", func(ctx context.Context) (*Response, error) { return cb.GenomicRegionClient().Clinical(ctx, "13:1-2", nil) }, "/v5/hsapiens/genomic/region/clinical/13:1-2"},
		{"region conservation", func(ctx context.Context) (*Response, error) { return cb.GenomicRegionClient().Conservation(ctx, "13:1-2", nil) }, "/v5/hsapiens/genomic/region/conservation/13:1-2"},
		{"region regulatory", func(ctx context.Context) (*Response, error) { return cb.GenomicRegionClient().Regulatory(ctx, "13:1-2", nil) }, "/v5/hsapiens/genomic/region/regulatory/13:1-2"},
		{"region sequence", func(ctx context.Context) (*Response, error) { return cb.GenomicRegionClient().Sequence(ctx, "13:1-2", nil) }, "/v5/hsapiens/genomic/region/sequence/13:1-2"},
		{"region tfbs", func(ctx context.Context) (*Response, error) { return cb.GenomicRegionClient().TFBS(ctx, "13:1-2", nil) }, "/v5/hsapiens/genomic/region/tfbs/13:1-2"},
		{"region transcripts", func(ctx context.Context) (*Response, error) { return cb.GenomicRegionClient().Transcripts(ctx, "13:1-2", nil) }, "/v5/hsapiens/genomic/region/transcript/13:1-2"},
		{"region variations", func(ctx context.Context) (*Response, error) { return cb.GenomicRegionClient().Variations(ctx, "13:1-2", nil) }, "/v5/hsapiens/genomic/region/variation/13:1-2"},
		{"region repeats", func(ctx context.Context) (*Response, error) { return cb.GenomicRegionClient().Repeats(ctx, "13:1-2", nil) }, "/v5/hsapiens/genomic/region/repeat/13:1-2"},

		{"variant annotation", func(ctx context.Context) (*Response, error) { return cb.VariantClient().Annotation(ctx, "19:45411941:T:C", nil) }, "/v5/hsapiens/genomic/variant/annotation/19:45411941:T:C"},
		{"variant cadd", func(ctx context.Context) (*Response, error) { return cb.VariantClient().CADD(ctx, "19:45411941:T:C", nil) }, "/v5/hsapiens/genomic/variant/cadd/19:45411941:T:C"},

		{"chromosome info", func(ctx context.Context) (*Response, error) { return cb.GenomeSequenceClient().Info(ctx, "13", nil) }, "/v5/hsapiens/genomic/chromosome/info/13"},
		{"chromosome search", func(ctx context.Context) (*Response, error) { return cb.GenomeSequenceClient().Search(ctx, nil) }, "/v5/hsapiens/genomic/chromosome/search"},
		{"chromosome cytobands", func(ctx context.Context) (*Response, error) { return cb.GenomeSequenceClient().Cytobands(ctx, "13", nil) }, "/v5/hsapiens/genomic/chromosome/cytoband/13"},

		{"clinical search", func(ctx context.Context) (*Response, error) { return cb.ClinicalClient().Search(ctx, Options{"gene": "BRCA2"}) }, "/v5/hsapiens/feature/clinical/search"},
		{"clinical allele origin", func(ctx context.Context) (*Response, error) { return cb.ClinicalClient().AlleleOriginLabels(ctx) }, "/v5/hsapiens/feature/clinical/allele_origin_labels"},
		{"clinical clinsig", func(ctx context.Context) (*Response, error) { return cb.ClinicalClient().ClinsigLabels(ctx) }, "/v5/hsapiens/feature/clinical/clinsig_labels"},
		{"clinical consistency", func(ctx context.Context) (*Response, error) { return cb.ClinicalClient().ConsistencyLabels(ctx) }, "/v5/hsapiens/feature/clinical/consistency_labels"},
		{"clinical inheritance", func(ctx context.Context) (*Response, error) { return cb.ClinicalClient().ModeInheritanceLabels(ctx) }, "/v5/hsapiens/feature/clinical/mode_inheritance_labels"},
		{"clinical variant types", func(ctx context.Context) (*Response, error) { return cb.ClinicalClient().VariantTypes(ctx) }, "/v5/hsapiens/feature/clinical/variant_types"},

		{"meta about", func(ctx context.Context) (*Response, error) { return cb.MetaClient().About(ctx) }, "/v5/meta/about"},
		{"meta species", func(ctx context.Context) (*Response, error) { return cb.MetaClient().Species(ctx) }, "/v5/meta/species"},
		{"meta ping", func(ctx context.Context) (*Response, error) { return cb.MetaClient().Ping(ctx) }, "/v5/meta/ping"},
		{"meta versions", func(ctx context.Context) (*Response, error) { return cb.MetaClient().Versions(ctx) }, "/v5/hsapiens/meta/versions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.call(context.Background())
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.want, rec.lastPath())
		})
	}
}

func TestResource_Names(t *testing.T) {
	assert.Len(t, Resources(), 10)
	assert.Equal(t, "gene", ResourceGene.String())
	assert.Equal(t, "genome_sequence", ResourceGenomeSequence.String())
	assert.Equal(t, "Resource(42)", Resource(42).String())
	assert.Equal(t, "feature", ResourceXref.Category())
	assert.Equal(t, "id", ResourceXref.Subcategory())
	assert.Equal(t, "", ResourceMeta.Subcategory())
}

func TestResourceClient_BoundPath(t *testing.T) {
	cb, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, "genomic", cb.GenomicRegionClient().Category())
	assert.Equal(t, "region", cb.GenomicRegionClient().Subcategory())
}

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in   string
		want Region
	}{
		{"13", Region{Chrom: "13"}},
		{"13:32315474", Region{Chrom: "13", Start: 32315474, End: 32315474}},
		{"13:32315474-32400266", Region{Chrom: "13", Start: 32315474, End: 32400266}},
		{" X:1-10 ", Region{Chrom: "X", Start: 1, End: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRegion(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", ":1-2", "13:abc", "13:0-5", "13:10-5", "13:1-x"} {
		_, err := ParseRegion(bad)
		assert.Error(t, err, bad)
	}
}

func TestJoinRegions(t *testing.T) {
	got := JoinRegions(Region{"13", 1, 100}, Region{Chrom: "X"})
	assert.Equal(t, "13:1-100,X", got)
}
