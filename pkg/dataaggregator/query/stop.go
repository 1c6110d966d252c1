package query

// Stop selects a stop by ID or by name. ID wins when both are set.
type Stop struct {
	ID   *int
	Name string
}

// StopSearch lists the stops whose name contains Name
type StopSearch struct {
	Name string
}
