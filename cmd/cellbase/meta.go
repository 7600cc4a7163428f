package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/inodb/cellbase-go/cellbase"
)

func newMetaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Show information about the CellBase service",
	}

	endpoints := []struct {
		use   string
		short string
		call  func(*cellbase.MetaClient, context.Context) (*cellbase.Response, error)
	}{
		{"about", "Show the service name, version and commit", (*cellbase.MetaClient).About},
		{"versions", "Show the data source versions for the configured species", (*cellbase.MetaClient).Versions},
		{"species", "List the species and assemblies served", (*cellbase.MetaClient).Species},
		{"ping", "Check that the service is up", (*cellbase.MetaClient).Ping},
	}
	for _, ep := range endpoints {
		cmd.AddCommand(&cobra.Command{
			Use:   ep.use,
			Short: ep.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cb, err := a.client()
				if err != nil {
					return err
				}
				resp, err := ep.call(cb.MetaClient(), cmd.Context())
				if err != nil {
					return err
				}
				return writeResponse(cmd.OutOrStdout(), resp, "json", "")
			},
		})
	}
	return cmd
}
