package query

// Catalog asks for the catalog snapshot in use, which may be nil
type Catalog struct{}
