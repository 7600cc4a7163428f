package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/cellbase-go/cellbase"
	"github.com/inodb/cellbase-go/internal/vcf"
)

// defaultAnnotationFields are the tab columns of annotate output.
var defaultAnnotationFields = []string{
	"chromosome",
	"start",
	"reference",
	"alternate",
	"id",
	"displayConsequenceType",
	"consequenceTypes.geneName",
}

func newAnnotateCmd(a *app) *cobra.Command {
	var (
		f           queryFlags
		inputFormat string
	)
	cmd := &cobra.Command{
		Use:   "annotate <input-file>",
		Short: "Annotate the variants of a VCF or MAF file",
		Long: `Annotate every variant of a plain or gzipped VCF or MAF file ('-' for stdin)
through genomic/variant/annotation. Multi-allelic records are split and
symbolic alleles are skipped.`,
		Example: `  cellbase annotate input.vcf.gz --format tab
  cellbase annotate data_mutations.txt --workers 4 --per-call 200 --save annotations.duckdb
  cellbase annotate - -o include=consequenceTypes < input.vcf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnnotate(cmd, args[0], inputFormat, &f)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: vcf, maf (auto-detected if not specified)")
	cmd.Flags().Lookup("fields").Usage = "comma-separated result fields for tab output (default " +
		strings.Join(defaultAnnotationFields, ",") + ")"
	return cmd
}

func (a *app) runAnnotate(cmd *cobra.Command, path, inputFormat string, f *queryFlags) error {
	if err := checkFormat(f.format); err != nil {
		return err
	}
	opts, err := f.queryOptions()
	if err != nil {
		return err
	}

	ids, err := readVariantIDs(path, inputFormat, a.logger)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("%s: no variants to annotate", path)
	}

	cb, err := a.client()
	if err != nil {
		return err
	}
	a.logger.Info("annotating variants", zap.String("file", path), zap.Int("variants", len(ids)))

	resp, err := cb.VariantClient().AnnotationBatch(cmd.Context(), ids, opts, f.batch())
	if err != nil {
		return err
	}
	for _, ev := range resp.Errors() {
		a.logger.Warn("server reported an error", zap.String("id", ev.ID), zap.String("message", ev.Message))
	}

	if f.save != "" {
		q := cellbase.Query{
			Category:    cellbase.ResourceVariant.Category(),
			Subcategory: cellbase.ResourceVariant.Subcategory(),
			Resource:    "annotation",
		}
		if err := a.save(f.save, cb.ShowConfiguration().Species, q, resp); err != nil {
			return err
		}
	}

	fields := f.fields
	if fields == "" {
		fields = strings.Join(defaultAnnotationFields, ",")
	}
	return writeResponse(cmd.OutOrStdout(), resp, f.format, fields)
}

// readVariantIDs returns the chrom:pos:ref:alt IDs of a variant file in
// file order, without duplicates.
func readVariantIDs(path, format string, logger *zap.Logger) ([]string, error) {
	parser, err := openVariants(path, format)
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	var ids []string
	seen := make(map[string]struct{})
	skipped := 0
	for {
		v, err := parser.Next()
		if err != nil {
			return nil, err
		}
		if v == nil {
			break
		}
		for _, split := range vcf.SplitMultiAllelic(v) {
			if split.IsSymbolic() {
				skipped++
				continue
			}
			id := split.CellBaseID()
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if skipped > 0 {
		logger.Warn("skipped symbolic alleles", zap.Int("count", skipped))
	}
	return ids, nil
}
