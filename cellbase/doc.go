// Package cellbase provides a Go client for the CellBase REST service,
// which serves genes, transcripts, proteins, variants and related
// biological entities.
//
// A Client holds one configuration and hands out one client per resource,
// created on first access:
//
//	cb, err := cellbase.New(nil) // default host, version and species
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := cb.GeneClient().Info(ctx, "BRCA2", cellbase.Options{"include": "id,name"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range resp.Results() {
//	    fmt.Println(string(r))
//	}
//
// Endpoints without a dedicated method can be queried directly:
//
//	resp, err := cb.Get(ctx, "feature", "gene", "info", "BRCA2", nil)
//
// Requests are sent to
//
//	<host>/<version>/<species>/<category>/<subcategory>/<resource>[/<id>]?<options>
//
// Each call issues exactly one HTTP GET (GetBatch issues one per chunk of
// IDs). Non-2xx answers are returned as *HTTPError, network failures as
// *TransportError; neither is retried.
package cellbase
