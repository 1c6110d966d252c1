package catalog

import (
	"cmp"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/util"
	"golang.org/x/exp/slices"
)

// Build converts the upstream func=7 payload into a Catalog. Missing
// structure gives empty lists and records without a usable id are dropped.
func Build(payload map[string]any, sourceURL string, generatedAt time.Time) *ctdf.Catalog {
	update := util.AsMap(util.AsMap(payload["iTranvias"])["actualizacion"])

	rawLines := util.AsList(update["lineas"])
	rawStops := util.AsList(update["paradas"])

	lines := make([]ctdf.Line, 0, len(rawLines))
	for _, item := range rawLines {
		if line, ok := buildLine(util.AsMap(item)); ok {
			lines = append(lines, line)
		}
	}
	slices.SortStableFunc(lines, func(a, b ctdf.Line) int {
		return cmp.Compare(a.ID, b.ID)
	})

	stops := make([]ctdf.Stop, 0, len(rawStops))
	for _, item := range rawStops {
		if stop, ok := buildStop(util.AsMap(item)); ok {
			stops = append(stops, stop)
		}
	}
	slices.SortStableFunc(stops, func(a, b ctdf.Stop) int {
		return cmp.Compare(a.ID, b.ID)
	})

	if skipped := len(rawLines) - len(lines) + len(rawStops) - len(stops); skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("Dropped malformed catalog records")
	}

	return &ctdf.Catalog{
		GeneratedAt: generatedAt,
		SourceURL:   sourceURL,
		Stops:       stops,
		Lines:       lines,
	}
}

func buildLine(raw map[string]any) (ctdf.Line, bool) {
	if raw == nil {
		return ctdf.Line{}, false
	}
	id, ok := util.SafeID(raw["id"])
	if !ok {
		return ctdf.Line{}, false
	}

	name := textOr(raw["lin_comer"], strconv.Itoa(id))

	variants := []ctdf.RouteVariant{}
	for index, item := range util.AsList(raw["rutas"]) {
		route := util.AsMap(item)
		if route == nil {
			continue
		}

		directionCode := util.SafeIntPtr(route["sentido"])
		stopIDs := util.SafeInts(util.AsList(route["paradas"]))

		variants = append(variants, ctdf.RouteVariant{
			RouteID:         util.SafeIntPtr(route["ruta"]),
			RouteIndex:      index,
			DirectionCode:   directionCode,
			Direction:       ctdf.InferDirection(directionCode, index),
			OriginName:      textOr(route["nombre_orig"], ""),
			DestinationName: textOr(route["nombre_dest"], ""),
			StopIDs:         stopIDs,
			StopCount:       len(stopIDs),
		})
	}

	directions := []ctdf.Direction{}
	for _, variant := range variants {
		if variant.Direction == ctdf.DirectionIda || variant.Direction == ctdf.DirectionVuelta {
			directions = append(directions, variant.Direction)
		}
	}
	slices.Sort(directions)
	directions = slices.Compact(directions)

	return ctdf.Line{
		ID:              id,
		Name:            name,
		CommercialName:  name,
		OriginName:      textOr(raw["nombre_orig"], ""),
		DestinationName: textOr(raw["nombre_dest"], ""),
		ColorHex:        NormalizeColor(textOr(raw["color"], "")),
		Directions:      directions,
		HasIda:          slices.Contains(directions, ctdf.DirectionIda),
		HasVuelta:       slices.Contains(directions, ctdf.DirectionVuelta),
		RouteVariants:   variants,
	}, true
}

func buildStop(raw map[string]any) (ctdf.Stop, bool) {
	if raw == nil {
		return ctdf.Stop{}, false
	}
	id, ok := util.SafeID(raw["id"])
	if !ok {
		return ctdf.Stop{}, false
	}

	return ctdf.Stop{
		ID:        id,
		Name:      textOr(raw["nombre"], ctdf.DefaultStopName(id)),
		Latitude:  util.SafeFloatPtr(raw["posy"]),
		Longitude: util.SafeFloatPtr(raw["posx"]),
		Lines:     util.SortedUniqueInts(util.SafeInts(util.AsList(raw["enlaces"]))),
	}, true
}

// NormalizeColor turns an upstream colour such as "e30613" or "FF" into a
// "#rrggbb" value. An empty colour is nil.
func NormalizeColor(color string) *string {
	color = strings.TrimSpace(color)
	if color == "" {
		return nil
	}

	if !strings.HasPrefix(color, "#") {
		if len(color) < 6 {
			color = strings.Repeat("0", 6-len(color)) + color
		}
		color = "#" + color
	}

	return &color
}

// textOr trims the text form of value, falling back when the value is empty
// or a numeric zero
func textOr(value any, fallback string) string {
	text := util.AsString(value)
	if text == "" || isZeroNumber(value) {
		text = fallback
	}

	return strings.TrimSpace(text)
}

func isZeroNumber(value any) bool {
	switch value.(type) {
	case json.Number, float64, int, int64:
		f, ok := util.SafeFloat(value)
		return ok && f == 0
	}

	return false
}
