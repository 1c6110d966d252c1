package ctdf

type Bus struct {
	BusID int `json:"bus_id"`

	// Nil ETA means upstream gave no estimate
	ETAMinutes *int   `json:"eta_minutes"`
	ETALabel   string `json:"eta_label"`

	DistanceMeters *int `json:"distance_meters"`
	Status         *int `json:"status"`
	LastStopID     *int `json:"last_stop_id"`
}

type LineArrivals struct {
	LineID             int         `json:"line_id"`
	LineName           string      `json:"line_name"`
	LineCommercialName *string     `json:"line_commercial_name"`
	ColorHex           *string     `json:"color_hex"`
	Directions         []Direction `json:"directions"`
	HasIda             *bool       `json:"has_ida"`
	HasVuelta          *bool       `json:"has_vuelta"`

	Buses []Bus `json:"buses"`
}

type Arrivals struct {
	StopID int            `json:"stop_id"`
	Lines  []LineArrivals `json:"lines"`
	APIURL string         `json:"api_url"`
}
