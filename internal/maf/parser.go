// Package maf reads variants from MAF (Mutation Annotation Format) files.
package maf

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/cellbase-go/internal/vcf"
)

// Standard MAF column names
const (
	ColChromosome      = "Chromosome"
	ColStartPosition   = "Start_Position"
	ColReferenceAllele = "Reference_Allele"
	ColTumorSeqAllele2 = "Tumor_Seq_Allele2"
	ColHugoSymbol      = "Hugo_Symbol"
	ColSampleBarcode   = "Tumor_Sample_Barcode"
)

// ColumnIndices holds the indices of the MAF columns used; -1 if absent.
type ColumnIndices struct {
	Chromosome      int
	StartPosition   int
	ReferenceAllele int
	TumorSeqAllele2 int
	HugoSymbol      int
	SampleBarcode   int
}

// Parser reads variants from a MAF file.
type Parser struct {
	in         *vcf.Input
	lineNumber int
	columns    ColumnIndices
	headerLine string
}

// NewParser creates a new MAF parser for the given file.
// Supports plain and gzipped files; "-" reads stdin.
func NewParser(path string) (*Parser, error) {
	in, err := vcf.OpenInput(path)
	if err != nil {
		return nil, fmt.Errorf("open maf file: %w", err)
	}
	return newParser(in)
}

// NewParserFromReader creates a parser from an io.Reader.
func NewParserFromReader(r io.Reader) (*Parser, error) {
	in, err := vcf.NewInput(r)
	if err != nil {
		return nil, err
	}
	return newParser(in)
}

func newParser(in *vcf.Input) (*Parser, error) {
	p := &Parser{in: in}
	if err := p.parseHeader(); err != nil {
		in.Close()
		return nil, err
	}
	return p, nil
}

// nextLine returns the next non-empty, non-comment line.
func (p *Parser) nextLine() (string, error) {
	for {
		line, err := p.in.ReadLine()
		if err != nil {
			return "", err
		}
		p.lineNumber++
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
}

// parseHeader reads the header line and finds column indices.
func (p *Parser) parseHeader() error {
	line, err := p.nextLine()
	if err == io.EOF {
		return &ParseError{Line: p.lineNumber, Message: "no header line found"}
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	p.headerLine = line

	p.columns = ColumnIndices{-1, -1, -1, -1, -1, -1}
	for i, col := range strings.Split(line, "\t") {
		switch col {
		case ColChromosome:
			p.columns.Chromosome = i
		case ColStartPosition:
			p.columns.StartPosition = i
		case ColReferenceAllele:
			p.columns.ReferenceAllele = i
		case ColTumorSeqAllele2:
			p.columns.TumorSeqAllele2 = i
		case ColHugoSymbol:
			p.columns.HugoSymbol = i
		case ColSampleBarcode:
			p.columns.SampleBarcode = i
		}
	}

	required := []struct {
		name string
		idx  int
	}{
		{ColChromosome, p.columns.Chromosome},
		{ColStartPosition, p.columns.StartPosition},
		{ColReferenceAllele, p.columns.ReferenceAllele},
		{ColTumorSeqAllele2, p.columns.TumorSeqAllele2},
	}
	for _, r := range required {
		if r.idx < 0 {
			return &ParseError{
				Line:    p.lineNumber,
				Message: fmt.Sprintf("required column '%s' not found in header", r.name),
			}
		}
	}
	return nil
}

// Next reads the next variant from the MAF file.
// Returns nil, nil when there are no more variants.
func (p *Parser) Next() (*vcf.Variant, error) {
	line, err := p.nextLine()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read variant line: %w", err)
	}
	return p.parseLine(line)
}

// parseLine parses a single MAF data line into a Variant. The MAF '-'
// allele becomes the empty allele; Hugo_Symbol and Tumor_Sample_Barcode end
// up in Info when present.
func (p *Parser) parseLine(line string) (*vcf.Variant, error) {
	fields := strings.Split(line, "\t")

	minCols := max(p.columns.Chromosome, p.columns.StartPosition, p.columns.ReferenceAllele, p.columns.TumorSeqAllele2)
	if len(fields) <= minCols {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least %d columns, found %d", minCols+1, len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[p.columns.StartPosition], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[p.columns.StartPosition]),
		}
	}

	ref := fields[p.columns.ReferenceAllele]
	alt := fields[p.columns.TumorSeqAllele2]
	if alt == "-" {
		alt = ""
	}
	if ref == "-" {
		ref = ""
	}

	info := make(map[string]string)
	for col, idx := range map[string]int{ColHugoSymbol: p.columns.HugoSymbol, ColSampleBarcode: p.columns.SampleBarcode} {
		if idx >= 0 && idx < len(fields) && fields[idx] != "" {
			info[col] = fields[idx]
		}
	}

	return &vcf.Variant{
		Chrom:  fields[p.columns.Chromosome],
		Pos:    pos,
		ID:     ".",
		Ref:    ref,
		Alt:    alt,
		Filter: ".",
		Info:   info,
	}, nil
}

// Header returns the MAF header line.
func (p *Parser) Header() string {
	return p.headerLine
}

// Columns returns the parsed column indices.
func (p *Parser) Columns() ColumnIndices {
	return p.columns
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	return p.in.Close()
}

// ParseError represents an error during MAF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("maf parse error at line %d: %s", e.Line, e.Message)
}
