package arrivals

import (
	"cmp"
	"fmt"
	"strconv"

	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/util"
	"golang.org/x/exp/slices"
)

const (
	LabelNoData   = "sin_dato"
	LabelArriving = "llegando"
)

// Assemble turns the upstream func=0 payload of a stop into arrivals. Lines
// and buses without a usable id are dropped. Lines missing from lineMetadata
// are described by their id alone.
func Assemble(stopID int, payload map[string]any, apiURL string, lineMetadata map[int]ctdf.LineMetadata) *ctdf.Arrivals {
	rawLines := util.AsList(util.AsMap(payload["buses"])["lineas"])

	lines := make([]ctdf.LineArrivals, 0, len(rawLines))
	for _, item := range rawLines {
		rawLine := util.AsMap(item)
		if rawLine == nil {
			continue
		}
		lineID, ok := util.SafeID(rawLine["linea"])
		if !ok {
			continue
		}

		line := newLineArrivals(lineID, lineMetadata)
		for _, rawBus := range util.AsList(rawLine["buses"]) {
			if bus, ok := buildBus(util.AsMap(rawBus)); ok {
				line.Buses = append(line.Buses, bus)
			}
		}
		slices.SortStableFunc(line.Buses, func(a, b ctdf.Bus) int {
			return compareETA(a.ETAMinutes, b.ETAMinutes)
		})

		lines = append(lines, line)
	}

	slices.SortStableFunc(lines, func(a, b ctdf.LineArrivals) int {
		return compareETA(firstETA(a), firstETA(b))
	})

	return &ctdf.Arrivals{
		StopID: stopID,
		Lines:  lines,
		APIURL: apiURL,
	}
}

func newLineArrivals(lineID int, lineMetadata map[int]ctdf.LineMetadata) ctdf.LineArrivals {
	metadata, ok := lineMetadata[lineID]
	if !ok {
		return ctdf.LineArrivals{
			LineID:   lineID,
			LineName: strconv.Itoa(lineID),
			Buses:    []ctdf.Bus{},
		}
	}

	commercialName := metadata.CommercialName

	return ctdf.LineArrivals{
		LineID:             lineID,
		LineName:           metadata.Name,
		LineCommercialName: &commercialName,
		ColorHex:           metadata.ColorHex,
		Directions:         metadata.Directions,
		HasIda:             metadata.HasIda,
		HasVuelta:          metadata.HasVuelta,
		Buses:              []ctdf.Bus{},
	}
}

func buildBus(raw map[string]any) (ctdf.Bus, bool) {
	if raw == nil {
		return ctdf.Bus{}, false
	}
	busID, ok := util.SafeID(raw["bus"])
	if !ok {
		return ctdf.Bus{}, false
	}

	eta := util.SafeIntPtr(raw["tiempo"])

	return ctdf.Bus{
		BusID:          busID,
		ETAMinutes:     eta,
		ETALabel:       FormatETA(eta),
		DistanceMeters: util.SafeIntPtr(raw["distancia"]),
		Status:         util.SafeIntPtr(raw["estado"]),
		LastStopID:     util.SafeIntPtr(raw["ult_parada"]),
	}, true
}

// FormatETA renders minutes to arrival as shown on stop displays
func FormatETA(etaMinutes *int) string {
	switch {
	case etaMinutes == nil:
		return LabelNoData
	case *etaMinutes <= 0:
		return LabelArriving
	case *etaMinutes == 1:
		return "1 min"
	default:
		return fmt.Sprintf("%d min", *etaMinutes)
	}
}

// compareETA orders known ETAs ascending with unknown ones last
func compareETA(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*a, *b)
	}
}

func firstETA(line ctdf.LineArrivals) *int {
	if len(line.Buses) == 0 {
		return nil
	}

	return line.Buses[0].ETAMinutes
}

// FindBus returns the first line carrying busID and the bus itself
func FindBus(arrivals *ctdf.Arrivals, busID int) (*ctdf.LineArrivals, *ctdf.Bus, bool) {
	if arrivals == nil {
		return nil, nil, false
	}

	for i := range arrivals.Lines {
		line := &arrivals.Lines[i]
		for j := range line.Buses {
			if line.Buses[j].BusID == busID {
				return line, &line.Buses[j], true
			}
		}
	}

	return nil, nil, false
}

// FindLine returns the arrivals of lineID. A nil id finds nothing.
func FindLine(arrivals *ctdf.Arrivals, lineID *int) *ctdf.LineArrivals {
	if arrivals == nil || lineID == nil {
		return nil
	}

	for i := range arrivals.Lines {
		if arrivals.Lines[i].LineID == *lineID {
			return &arrivals.Lines[i]
		}
	}

	return nil
}
