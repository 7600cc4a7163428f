package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/inodb/cellbase-go/internal/maf"
	"github.com/inodb/cellbase-go/internal/vcf"
)

// openVariants opens a VCF or MAF file. An empty format is detected from
// the file name, then from its first bytes.
func openVariants(path, format string) (vcf.VariantParser, error) {
	if format == "" {
		format = detectInputFormat(path)
	}
	switch format {
	case "maf":
		return maf.NewParser(path)
	case "vcf":
		return vcf.NewParser(path)
	default:
		return nil, fmt.Errorf("unknown input format %q (want vcf or maf)", format)
	}
}

// detectInputFormat detects the input file format based on extension or content.
func detectInputFormat(path string) string {
	lowerPath := strings.TrimSuffix(strings.ToLower(path), ".gz")

	if strings.HasSuffix(lowerPath, ".vcf") {
		return "vcf"
	}
	if strings.HasSuffix(lowerPath, ".maf") {
		return "maf"
	}

	// cBioPortal MAF filenames
	baseName := filepath.Base(lowerPath)
	if baseName == "data_mutations.txt" || baseName == "data_mutations_extended.txt" {
		return "maf"
	}

	// Stdin cannot be peeked without consuming it.
	if path == "-" {
		return "vcf"
	}

	in, err := vcf.OpenInput(path)
	if err != nil {
		return "vcf"
	}
	defer in.Close()

	buf := make([]byte, 4096)
	n, _ := io.ReadFull(in, buf)
	content := string(buf[:n])

	if strings.HasPrefix(content, "##fileformat=VCF") || strings.HasPrefix(content, "#CHROM") {
		return "vcf"
	}
	if strings.Contains(content, "Hugo_Symbol") && strings.Contains(content, "Chromosome") {
		return "maf"
	}
	return "vcf"
}
