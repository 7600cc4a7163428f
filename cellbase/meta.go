package cellbase

import "context"

// MetaClient queries the meta endpoints describing the service itself.
type MetaClient struct {
	*resourceClient
}

// About returns the service name, version and commit.
func (c *MetaClient) About(ctx context.Context) (*Response, error) {
	return c.getSpeciesless(ctx, "about", "", nil)
}

// Species lists the species and assemblies served.
func (c *MetaClient) Species(ctx context.Context) (*Response, error) {
	return c.getSpeciesless(ctx, "species", "", nil)
}

// Ping checks that the service is up.
func (c *MetaClient) Ping(ctx context.Context) (*Response, error) {
	return c.getSpeciesless(ctx, "ping", "", nil)
}

// Versions returns the versions of the data sources loaded for the
// configured species.
func (c *MetaClient) Versions(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "versions", "", nil)
}
