package stopboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/coruna-bus/pkg/arrivals"
	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/dataaggregator"
	"github.com/travigo/coruna-bus/pkg/dataaggregator/query"
	"github.com/travigo/coruna-bus/pkg/resolver"
)

type Mode string

const (
	ModeStopArrivals Mode = "stop_arrivals"
	ModeBusAtStop    Mode = "bus_at_stop"
	ModeLineAtStop   Mode = "line_at_stop"
)

const (
	ErrorStopSelectorRequired = "stop_selector_required"
	ErrorSelectorConflict     = "selector_conflict"
	ErrorStopResolution       = "stop_resolution_error"
	ErrorAPI                  = "api_error"
	ErrorLineResolution       = "line_resolution_error"
)

type Request struct {
	StopID   *int
	StopName string
	BusID    *int
	LineID   *int
	LineName string

	// CatalogSource describes where the catalog was read from
	CatalogSource string
}

type Query struct {
	StopID    int                 `json:"stop_id"`
	StopName  string              `json:"stop_name"`
	MatchedBy resolver.MatchKind  `json:"matched_by"`
	BusID     *int                `json:"bus_id"`
	LineID    *int                `json:"line_id"`
	LineName  *string             `json:"line_name"`
	LineMatch *resolver.MatchKind `json:"line_match,omitempty"`
}

type Source struct {
	ArrivalsURL   string `json:"arrivals_url"`
	CatalogPath   string `json:"catalog_path"`
	CatalogLoaded bool   `json:"catalog_loaded"`
}

// Result is the outcome of a stop board query. A failed query carries only
// OK, Message and ErrorCode. A query that ran but found nothing has OK false
// and a Message without an ErrorCode.
type Result struct {
	OK        bool   `json:"ok"`
	Mode      Mode   `json:"mode,omitempty"`
	Message   string `json:"message,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`

	Query  *Query  `json:"query,omitempty"`
	Source *Source `json:"source,omitempty"`

	Arrivals *ctdf.Arrivals     `json:"arrivals,omitempty"`
	Line     *ctdf.LineArrivals `json:"line,omitempty"`
	Bus      *ctdf.Bus          `json:"bus,omitempty"`
}

// Failed reports whether the query could not be answered at all
func (r *Result) Failed() bool {
	return r.ErrorCode != ""
}

func failure(message string, code string) *Result {
	return &Result{OK: false, Message: message, ErrorCode: code}
}

// Run answers a stop board request: the arrivals at a stop, optionally
// narrowed to one bus or one line
func Run(ctx context.Context, aggregator *dataaggregator.Aggregator, request Request) *Result {
	if request.StopID == nil && request.StopName == "" {
		return failure("Provide --stop-id or --stop-name.", ErrorStopSelectorRequired)
	}
	if request.BusID != nil && (request.LineID != nil || request.LineName != "") {
		return failure("Use either bus selector or line selector, not both.", ErrorSelectorConflict)
	}

	catalog, err := dataaggregator.Lookup[*ctdf.Catalog](ctx, aggregator, query.Catalog{})
	if err != nil {
		log.Debug().Err(err).Msg("No catalog source available")
	}

	stop, err := dataaggregator.Lookup[*resolver.StopMatch](ctx, aggregator, query.Stop{
		ID:   request.StopID,
		Name: request.StopName,
	})
	if err != nil {
		return failure(fmt.Sprintf("Cannot resolve stop: %s.", resolutionCode(err)), ErrorStopResolution)
	}

	stopArrivals, err := dataaggregator.Lookup[*ctdf.Arrivals](ctx, aggregator, query.StopArrivals{StopID: stop.Stop.ID})
	if err != nil {
		return failure(err.Error(), ErrorAPI)
	}

	stopName := stop.Stop.Name
	if stopName == "" {
		stopName = ctdf.DefaultStopName(stop.Stop.ID)
	}

	mode := ModeStopArrivals
	switch {
	case request.BusID != nil:
		mode = ModeBusAtStop
	case request.LineID != nil || request.LineName != "":
		mode = ModeLineAtStop
	}

	result := &Result{
		OK:   true,
		Mode: mode,
		Query: &Query{
			StopID:    stop.Stop.ID,
			StopName:  stopName,
			MatchedBy: stop.MatchedBy,
			BusID:     request.BusID,
			LineID:    request.LineID,
			LineName:  optionalString(request.LineName),
		},
		Source: &Source{
			ArrivalsURL:   stopArrivals.APIURL,
			CatalogPath:   request.CatalogSource,
			CatalogLoaded: catalog != nil,
		},
	}

	switch mode {
	case ModeBusAtStop:
		line, bus, found := arrivals.FindBus(stopArrivals, *request.BusID)
		if !found {
			result.OK = false
			result.Message = fmt.Sprintf("Bus %d not found at stop %d.", *request.BusID, stop.Stop.ID)
			return result
		}
		result.Line = line
		result.Bus = bus
	case ModeLineAtStop:
		lineMatch, err := dataaggregator.Lookup[*resolver.LineMatch](ctx, aggregator, query.Line{
			ID:   request.LineID,
			Name: request.LineName,
		})
		if err == nil && lineMatch == nil {
			err = resolver.ErrLineNotFound
		}
		if err != nil {
			return failure(fmt.Sprintf("Cannot resolve line: %s.", resolutionCode(err)), ErrorLineResolution)
		}

		result.Query.LineID = &lineMatch.LineID
		result.Query.LineMatch = &lineMatch.MatchedBy

		line := arrivals.FindLine(stopArrivals, &lineMatch.LineID)
		if line == nil {
			result.OK = false
			result.Message = fmt.Sprintf("Line %d has no arrivals at stop %d.", lineMatch.LineID, stop.Stop.ID)
			return result
		}
		result.Line = line
	default:
		result.Arrivals = stopArrivals
	}

	return result
}

func resolutionCode(err error) string {
	var resolutionErr *resolver.ResolutionError
	if errors.As(err, &resolutionErr) {
		return resolutionErr.Code
	}

	return err.Error()
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}
