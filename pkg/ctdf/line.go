package ctdf

type Direction string

const (
	DirectionIda      Direction = "ida"
	DirectionVuelta   Direction = "vuelta"
	DirectionCocheras Direction = "cocheras"
	DirectionVariante Direction = "variante"
)

// Upstream direction codes with a fixed meaning
const (
	DirectionCodeIda      = 0
	DirectionCodeVuelta   = 1
	DirectionCodeCocheras = 30
)

type Line struct {
	ID             int    `json:"id" groups:"basic,detailed"`
	Name           string `json:"name" groups:"basic,detailed"`
	CommercialName string `json:"commercial_name" groups:"basic,detailed"`

	OriginName      string `json:"origin_name" groups:"basic,detailed"`
	DestinationName string `json:"destination_name" groups:"basic,detailed"`

	ColorHex *string `json:"color_hex" groups:"basic,detailed"`

	Directions []Direction `json:"directions" groups:"basic,detailed"`
	HasIda     bool        `json:"has_ida" groups:"basic,detailed"`
	HasVuelta  bool        `json:"has_vuelta" groups:"basic,detailed"`

	RouteVariants []RouteVariant `json:"route_variants" groups:"detailed"`
}

type RouteVariant struct {
	RouteID       *int      `json:"route_id" groups:"detailed"`
	RouteIndex    int       `json:"route_index" groups:"detailed"`
	DirectionCode *int      `json:"direction_code" groups:"detailed"`
	Direction     Direction `json:"direction" groups:"detailed"`

	OriginName      string `json:"origin_name" groups:"detailed"`
	DestinationName string `json:"destination_name" groups:"detailed"`

	StopIDs   []int `json:"stop_ids" groups:"detailed"`
	StopCount int   `json:"stop_count" groups:"detailed"`
}

// LineMetadata is the display subset of a Line attached to arrivals
type LineMetadata struct {
	ID             int
	Name           string
	CommercialName string
	ColorHex       *string
	Directions     []Direction
	HasIda         *bool `copier:"-"`
	HasVuelta      *bool `copier:"-"`
}

// InferDirection labels a route variant. An explicit upstream code wins,
// otherwise the position in the line's route list decides.
func InferDirection(directionCode *int, routeIndex int) Direction {
	if directionCode != nil {
		switch *directionCode {
		case DirectionCodeIda:
			return DirectionIda
		case DirectionCodeVuelta:
			return DirectionVuelta
		case DirectionCodeCocheras:
			return DirectionCocheras
		}
	}

	switch routeIndex {
	case 0:
		return DirectionIda
	case 1:
		return DirectionVuelta
	default:
		return DirectionVariante
	}
}
