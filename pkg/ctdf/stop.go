package ctdf

import "fmt"

type Stop struct {
	ID   int    `json:"id" groups:"basic,detailed"`
	Name string `json:"name" groups:"basic,detailed"`

	Latitude  *float64 `json:"latitude" groups:"basic,detailed"`
	Longitude *float64 `json:"longitude" groups:"basic,detailed"`

	// Line IDs serving the stop, sorted and unique
	Lines []int `json:"lines" groups:"basic,detailed"`
}

// DefaultStopName is the display name used when upstream has none
func DefaultStopName(id int) string {
	return fmt.Sprintf("Parada %d", id)
}

// NewPlaceholderStop builds the minimal stop used when an ID cannot be found in a catalog
func NewPlaceholderStop(id int) Stop {
	return Stop{
		ID:    id,
		Name:  DefaultStopName(id),
		Lines: []int{},
	}
}
