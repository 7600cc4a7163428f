package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/cellbase-go/cellbase"
	"github.com/inodb/cellbase-go/internal/duckdb"
	"github.com/inodb/cellbase-go/internal/idlist"
	"github.com/inodb/cellbase-go/internal/output"
)

// queryFlags are the flags shared by every command that sends a query.
type queryFlags struct {
	options []string
	idsFile string
	column  string
	perCall int
	workers int
	format  string
	fields  string
	save    string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.options, "option", "o", nil, "query option as key=value (repeatable)")
	flags.StringVar(&f.idsFile, "ids-file", "", "read IDs from a file ('-' for stdin)")
	flags.StringVar(&f.column, "column", "", "header column holding IDs in --ids-file (default: one ID per line)")
	flags.IntVar(&f.perCall, "per-call", cellbase.DefaultIDsPerCall, "IDs per request when querying many IDs")
	flags.IntVar(&f.workers, "workers", 1, "concurrent requests when querying many IDs")
	flags.StringVarP(&f.format, "format", "f", "json", "output format: json, jsonl, tab")
	flags.StringVar(&f.fields, "fields", "", "comma-separated result fields for tab output (default id,name)")
	flags.StringVar(&f.save, "save", "", "also store results in a DuckDB file")
}

func (f *queryFlags) queryOptions() (cellbase.Options, error) {
	return parseOptions(f.options)
}

func (f *queryFlags) batch() cellbase.BatchOptions {
	return cellbase.BatchOptions{PerCall: f.perCall, Workers: f.workers}
}

// parseOptions turns key=value pairs into query options.
func parseOptions(pairs []string) (cellbase.Options, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	opts := make(cellbase.Options, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q: expected key=value", p)
		}
		opts[key] = value
	}
	return opts, nil
}

func newQueryCmd(a *app) *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   "query <category> <subcategory> <resource> [id]",
		Short: "Send a query to any REST endpoint",
		Long: `Send a query to <category>/<subcategory>/<resource>[/<id>].

Use '-' as subcategory for endpoints without one, such as meta.
Several IDs may be given comma-separated or through --ids-file.`,
		Example: `  cellbase query feature gene info BRCA2,TP53 -o include=id,name
  cellbase query genomic region gene 3:1000-100000 --format tab
  cellbase query genomic variant annotation --ids-file variants.txt --workers 4
  cellbase query meta - versions`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			subcategory := args[1]
			if subcategory == "-" {
				subcategory = ""
			}
			q := cellbase.Query{Category: args[0], Subcategory: subcategory, Resource: args[2]}
			if len(args) == 4 {
				q.ID = args[3]
			}
			return a.runQuery(cmd, q, &f)
		},
	}
	f.register(cmd)
	return cmd
}

// newResourceCmd creates a thin wrapper such as "cellbase gene info BRCA2"
// bound to the category and subcategory of r.
func newResourceCmd(a *app, r cellbase.Resource) *cobra.Command {
	var f queryFlags
	name := strings.ReplaceAll(r.String(), "_", "-")
	path := r.Category() + "/" + r.Subcategory()
	cmd := &cobra.Command{
		Use:   name + " <resource> [id]",
		Short: "Query " + path,
		Long: fmt.Sprintf(`Query %s/<resource>[/<id>].

Run "cellbase %s help" to list the resources served.`, path, name),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := cellbase.Query{Category: r.Category(), Subcategory: r.Subcategory(), Resource: args[0]}
			if len(args) == 2 {
				q.ID = args[1]
			}
			return a.runQuery(cmd, q, &f)
		},
	}
	if r.Subcategory() != name {
		cmd.Aliases = []string{r.Subcategory()}
	}
	f.register(cmd)
	return cmd
}

// runQuery sends q, or one batched query per --ids-file chunk, and writes
// the results.
func (a *app) runQuery(cmd *cobra.Command, q cellbase.Query, f *queryFlags) error {
	if err := checkFormat(f.format); err != nil {
		return err
	}
	opts, err := f.queryOptions()
	if err != nil {
		return err
	}
	cb, err := a.client()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var resp *cellbase.Response
	if f.idsFile != "" {
		if q.ID != "" {
			return fmt.Errorf("give either an id argument or --ids-file, not both")
		}
		ids, err := idlist.Load(f.idsFile, f.column)
		if err != nil {
			return err
		}
		a.logger.Info("querying id list", zap.String("file", f.idsFile), zap.Int("ids", len(ids)))
		resp, err = cb.GetBatch(ctx, q.Category, q.Subcategory, q.Resource, ids, opts, f.batch())
		if err != nil {
			return err
		}
	} else {
		resp, err = cb.Get(ctx, q.Category, q.Subcategory, q.Resource, q.ID, opts)
		if err != nil {
			return err
		}
	}

	for _, ev := range resp.Errors() {
		a.logger.Warn("server reported an error", zap.String("id", ev.ID), zap.String("message", ev.Message))
	}

	if f.save != "" {
		if err := a.save(f.save, cb.ShowConfiguration().Species, q, resp); err != nil {
			return err
		}
	}
	return writeResponse(cmd.OutOrStdout(), resp, f.format, f.fields)
}

// save appends resp to the DuckDB file at path.
func (a *app) save(path, species string, q cellbase.Query, resp *cellbase.Response) error {
	store, err := duckdb.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	run := duckdb.NewRun(species, q)
	n, err := store.WriteResponse(run, resp)
	if err != nil {
		return fmt.Errorf("saving results: %w", err)
	}
	a.logger.Info("saved results", zap.String("file", path), zap.String("run", run.ID), zap.Int("results", n))
	return nil
}

func checkFormat(format string) error {
	switch format {
	case "json", "jsonl", "tab", "":
		return nil
	}
	return fmt.Errorf("unknown format %q (want json, jsonl or tab)", format)
}

// writeResponse writes resp in the requested format.
func writeResponse(w io.Writer, resp *cellbase.Response, format, fields string) error {
	switch format {
	case "json", "":
		if resp.Responses == nil && len(resp.Raw) > 0 {
			_, err := w.Write(resp.Raw)
			if err == nil && resp.Raw[len(resp.Raw)-1] != '\n' {
				_, err = io.WriteString(w, "\n")
			}
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "jsonl":
		return writeResults(output.NewJSONLWriter(w), resp)
	case "tab":
		return writeResults(output.NewTabWriter(w, splitFields(fields)), resp)
	default:
		return checkFormat(format)
	}
}

func writeResults(rw output.ResultWriter, resp *cellbase.Response) error {
	if err := rw.WriteHeader(); err != nil {
		return err
	}
	for _, qr := range resp.Responses {
		for _, result := range qr.Results {
			if err := rw.Write(qr.ID, result); err != nil {
				return err
			}
		}
	}
	return rw.Flush()
}

func splitFields(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
