package query

// Line selects a line by ID or by name. Neither set selects nothing.
type Line struct {
	ID   *int
	Name string
}

type LineList struct{}
