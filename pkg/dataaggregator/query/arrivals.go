package query

type StopArrivals struct {
	StopID int
}
