package domain

// CatalogProduct is the subset of a catalog entry the pipeline needs.
type CatalogProduct struct {
	ID       int
	Title    string
	Category string
	Brand    string
	Rating   float64
}

// Catalog maps numeric product ids to catalog entries. An empty catalog
// is valid and simply yields no enrichment matches.
type Catalog map[int]CatalogProduct
