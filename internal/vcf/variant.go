// Package vcf reads variants from VCF files for bulk annotation.
package vcf

import (
	"strconv"
	"strings"
)

// Variant is one VCF record with a single alternate allele after
// SplitMultiAllelic.
type Variant struct {
	Chrom  string            // Chromosome name (e.g., "12", "chr12")
	Pos    int64             // 1-based genomic position
	ID     string            // Variant identifier (e.g., rs ID)
	Ref    string            // Reference allele
	Alt    string            // Alternate allele
	Qual   float64           // Quality score
	Filter string            // Filter status (PASS or filter name)
	Info   map[string]string // INFO key-value pairs; flags map to ""
}

// IsSNV returns true if the variant is a single nucleotide variant.
func (v *Variant) IsSNV() bool {
	return len(v.Ref) == 1 && len(v.Alt) == 1
}

// IsIndel returns true if the variant is an insertion or deletion.
func (v *Variant) IsIndel() bool {
	return len(v.Ref) != len(v.Alt)
}

// IsSymbolic reports whether the alternate allele cannot be sent as
// sequence, such as <DEL>, breakends, the '*' overlap allele or '.'.
func (v *Variant) IsSymbolic() bool {
	alt := v.Alt
	return alt == "." || alt == "*" ||
		strings.HasPrefix(alt, "<") || strings.ContainsAny(alt, "[]")
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (v *Variant) NormalizeChrom() string {
	if len(v.Chrom) > 3 && strings.EqualFold(v.Chrom[:3], "chr") {
		return v.Chrom[3:]
	}
	return v.Chrom
}

// CellBaseID returns the variant as chrom:pos:ref:alt, the form the
// variant annotation endpoint accepts. Empty alleles are written as "-".
func (v *Variant) CellBaseID() string {
	var b strings.Builder
	b.WriteString(v.NormalizeChrom())
	b.WriteByte(':')
	b.WriteString(strconv.FormatInt(v.Pos, 10))
	b.WriteByte(':')
	b.WriteString(allele(v.Ref))
	b.WriteByte(':')
	b.WriteString(allele(v.Alt))
	return b.String()
}

func allele(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
