package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/inodb/cellbase-go/internal/duckdb"
)

func newExportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exports",
		Short: "Inspect results saved with --save",
	}
	cmd.AddCommand(newExportsListCmd())
	cmd.AddCommand(newExportsShowCmd())
	cmd.AddCommand(newExportsDeleteCmd())
	return cmd
}

// openExisting opens a DuckDB export without creating it.
func openExisting(path string) (*duckdb.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	return duckdb.Open(path)
}

func newExportsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file.duckdb>",
		Short: "List saved runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openExisting(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tFETCHED\tSPECIES\tENDPOINT\tRESULTS")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s/%s/%s\t%d\n",
					r.ID, r.FetchedAt.UTC().Format(time.RFC3339), r.Species,
					r.Category, r.Subcategory, r.Resource, r.Results)
			}
			return tw.Flush()
		},
	}
}

func newExportsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file.duckdb> <run-id>",
		Short: "Print the results of a saved run as JSON lines",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openExisting(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			results, err := store.Results(args[1])
			if err != nil {
				return err
			}
			if len(results) == 0 {
				return fmt.Errorf("run %q not found in %s", args[1], args[0])
			}
			out := cmd.OutOrStdout()
			for _, r := range results {
				if _, err := fmt.Fprintln(out, r.Payload); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newExportsDeleteCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "delete <file.duckdb> [run-id]",
		Short: "Delete one saved run, or all of them with --all",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 2) {
				return fmt.Errorf("give either a run id or --all")
			}
			store, err := openExisting(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			if all {
				return store.Clear()
			}
			return store.DeleteRun(args[1])
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "delete every saved run")
	return cmd
}
