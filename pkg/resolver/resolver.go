package resolver

import (
	"strconv"
	"strings"

	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/util"
)

// MatchKind records how a selector was resolved
type MatchKind string

const (
	MatchStopID           MatchKind = "stop_id"
	MatchStopNameExact    MatchKind = "stop_name_exact"
	MatchStopNameContains MatchKind = "stop_name_contains"

	MatchLineID                   MatchKind = "line_id"
	MatchLineNameNumericNoCatalog MatchKind = "line_name_numeric_without_catalog"
	MatchLineName                 MatchKind = "line_name"
)

type StopMatch struct {
	Stop      ctdf.Stop
	MatchedBy MatchKind
}

type LineMatch struct {
	LineID    int
	MatchedBy MatchKind
}

// ResolveStop finds the stop selected by id or by name. An id always
// resolves, to a placeholder stop when the catalog does not know it. A name
// needs a catalog.
func ResolveStop(stopID *int, stopName string, catalog *ctdf.Catalog) (*StopMatch, error) {
	if stopID != nil {
		if stop, ok := catalog.GetStop(*stopID); ok {
			return &StopMatch{Stop: *stop, MatchedBy: MatchStopID}, nil
		}

		return &StopMatch{Stop: ctdf.NewPlaceholderStop(*stopID), MatchedBy: MatchStopID}, nil
	}

	if stopName == "" {
		return nil, ErrStopSelectorRequired
	}
	if catalog == nil {
		return nil, ErrCatalogRequiredForStop
	}

	stop, quality, err := match(catalog.Stops, util.NormalizeText(stopName), stopNames, ErrStopNameAmbiguous, ErrStopNotFound)
	if err != nil {
		return nil, err
	}

	matchedBy := MatchStopNameContains
	if quality == matchExact {
		matchedBy = MatchStopNameExact
	}

	return &StopMatch{Stop: *stop, MatchedBy: matchedBy}, nil
}

// ResolveLine finds the line id selected by id or by name. With no selector
// it returns nil and no error.
func ResolveLine(lineID *int, lineName string, catalog *ctdf.Catalog) (*LineMatch, error) {
	if lineID != nil {
		return &LineMatch{LineID: *lineID, MatchedBy: MatchLineID}, nil
	}

	if lineName == "" {
		return nil, nil
	}

	if catalog == nil {
		if id, ok := util.SafeInt(lineName); ok {
			return &LineMatch{LineID: id, MatchedBy: MatchLineNameNumericNoCatalog}, nil
		}

		return nil, ErrCatalogRequiredForLine
	}

	line, _, err := match(catalog.Lines, util.NormalizeText(lineName), lineNames, ErrLineNameAmbiguous, ErrLineNotFound)
	if err != nil {
		return nil, err
	}

	return &LineMatch{LineID: line.ID, MatchedBy: MatchLineName}, nil
}

// SearchStops lists the stops whose normalised name contains query, in catalog order
func SearchStops(catalog *ctdf.Catalog, query string) []ctdf.Stop {
	if catalog == nil {
		return []ctdf.Stop{}
	}

	normalized := util.NormalizeText(query)

	return util.Filter(catalog.Stops, func(stop ctdf.Stop) bool {
		return strings.Contains(util.NormalizeText(stop.Name), normalized)
	})
}

func stopNames(stop ctdf.Stop) []string {
	return []string{util.NormalizeText(stop.Name)}
}

func lineNames(line ctdf.Line) []string {
	commercialName := line.CommercialName
	if commercialName == "" {
		commercialName = line.Name
	}

	return []string{
		util.NormalizeText(line.Name),
		util.NormalizeText(commercialName),
		strconv.Itoa(line.ID),
	}
}
