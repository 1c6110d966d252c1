package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/travigo/coruna-bus/pkg/ctdf"
)

type ExportKind string

const (
	ExportStops ExportKind = "stops"
	ExportLines ExportKind = "lines"
)

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

type stopRow struct {
	ID        int    `csv:"id"`
	Name      string `csv:"name"`
	Latitude  string `csv:"latitude"`
	Longitude string `csv:"longitude"`
	Lines     string `csv:"lines"`
}

type lineRow struct {
	ID              int    `csv:"id"`
	Name            string `csv:"name"`
	OriginName      string `csv:"origin_name"`
	DestinationName string `csv:"destination_name"`
	Color           string `csv:"color_hex"`
	Directions      string `csv:"directions"`
	Variants        int    `csv:"route_variants"`
}

// Export writes the stops or lines of a catalog in the given format
func Export(w io.Writer, catalog *ctdf.Catalog, kind ExportKind, format ExportFormat) error {
	switch format {
	case FormatCSV:
		switch kind {
		case ExportStops:
			return ExportStopsCSV(w, catalog.Stops)
		case ExportLines:
			return ExportLinesCSV(w, catalog.Lines)
		}
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")

		switch kind {
		case ExportStops:
			return encoder.Encode(catalog.Stops)
		case ExportLines:
			return encoder.Encode(catalog.Lines)
		}
	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	return fmt.Errorf("unknown export kind %q", kind)
}

func ExportStopsCSV(w io.Writer, stops []ctdf.Stop) error {
	rows := make([]*stopRow, 0, len(stops))
	for _, stop := range stops {
		lines := make([]string, 0, len(stop.Lines))
		for _, line := range stop.Lines {
			lines = append(lines, strconv.Itoa(line))
		}

		rows = append(rows, &stopRow{
			ID:        stop.ID,
			Name:      stop.Name,
			Latitude:  formatCoordinate(stop.Latitude),
			Longitude: formatCoordinate(stop.Longitude),
			Lines:     strings.Join(lines, " "),
		})
	}

	return gocsv.Marshal(rows, w)
}

func ExportLinesCSV(w io.Writer, lines []ctdf.Line) error {
	rows := make([]*lineRow, 0, len(lines))
	for _, line := range lines {
		directions := make([]string, 0, len(line.Directions))
		for _, direction := range line.Directions {
			directions = append(directions, string(direction))
		}

		color := ""
		if line.ColorHex != nil {
			color = *line.ColorHex
		}

		rows = append(rows, &lineRow{
			ID:              line.ID,
			Name:            line.Name,
			OriginName:      line.OriginName,
			DestinationName: line.DestinationName,
			Color:           color,
			Directions:      strings.Join(directions, " "),
			Variants:        len(line.RouteVariants),
		})
	}

	return gocsv.Marshal(rows, w)
}

func formatCoordinate(value *float64) string {
	if value == nil {
		return ""
	}

	return strconv.FormatFloat(*value, 'f', -1, 64)
}
