package checks

import "context"

// Catalog is a reference collection that can check its own indexes.
type Catalog interface {
	Verify(ctx context.Context) (int, error)
}

// CatalogReport is the result of verifying one catalog.
type CatalogReport struct {
	Entries int    `json:"entries"`
	Status  string `json:"status"` // "ok", "error"
	Error   string `json:"error,omitempty"`
}

// CheckCatalogs verifies every named catalog.
func CheckCatalogs(ctx context.Context, catalogs map[string]Catalog) map[string]CatalogReport {
	out := make(map[string]CatalogReport, len(catalogs))
	for name, c := range catalogs {
		n, err := c.Verify(ctx)
		report := CatalogReport{Entries: n, Status: "ok"}
		if err != nil {
			report.Status = "error"
			report.Error = err.Error()
		}
		out[name] = report
	}
	return out
}
