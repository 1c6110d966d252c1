package stopboard

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/coruna-bus/pkg/config"
	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/dataaggregator"
	"github.com/travigo/coruna-bus/pkg/dataaggregator/global"
	"github.com/travigo/coruna-bus/pkg/fetcher"
	"github.com/travigo/coruna-bus/pkg/resolver"
	"github.com/travigo/coruna-bus/pkg/util"
)

type fakeFetcher struct {
	payload map[string]any
	err     error
	calls   int
}

func (f *fakeFetcher) FetchJSON(ctx context.Context, rawURL string, options fetcher.Options) (map[string]any, error) {
	f.calls++

	return f.payload, f.err
}

func intPtr(i int) *int {
	return &i
}

func testCatalog() *ctdf.Catalog {
	return &ctdf.Catalog{
		Stops: []ctdf.Stop{
			{ID: 523, Name: "Praza de España", Lines: []int{1100}},
			{ID: 524, Name: "Praza de Pontevedra", Lines: []int{}},
		},
		Lines: []ctdf.Line{
			{ID: 1100, Name: "1A", CommercialName: "1A"},
			{ID: 300, Name: "3", CommercialName: "3"},
		},
	}
}

func arrivalsPayload() map[string]any {
	return map[string]any{
		"buses": map[string]any{
			"lineas": []any{
				map[string]any{"linea": 1100.0, "buses": []any{
					map[string]any{"bus": 3501.0, "tiempo": 4.0},
					map[string]any{"bus": 3502.0, "tiempo": 0.0},
				}},
				map[string]any{"linea": 2300.0, "buses": []any{
					map[string]any{"bus": 2301.0, "tiempo": 9.0},
				}},
			},
		},
	}
}

func setup(catalog *ctdf.Catalog, client *fakeFetcher) *dataaggregator.Aggregator {
	cfg := config.Default()

	return global.Setup(&cfg, catalog, client, fetcher.DefaultOptions())
}

func TestRunStopArrivals(t *testing.T) {
	client := &fakeFetcher{payload: arrivalsPayload()}

	result := Run(context.Background(), setup(testCatalog(), client), Request{StopName: "espana", CatalogSource: "catalog.json"})

	require.True(t, result.OK)
	assert.False(t, result.Failed())
	assert.Equal(t, ModeStopArrivals, result.Mode)
	assert.Equal(t, 523, result.Query.StopID)
	assert.Equal(t, "Praza de España", result.Query.StopName)
	assert.Equal(t, resolver.MatchStopNameContains, result.Query.MatchedBy)
	assert.Nil(t, result.Query.LineName)
	assert.Equal(t, "https://itranvias.com/queryitr_v3.php?func=0&dato=523", result.Source.ArrivalsURL)
	assert.Equal(t, "catalog.json", result.Source.CatalogPath)
	assert.True(t, result.Source.CatalogLoaded)
	require.Len(t, result.Arrivals.Lines, 2)
	assert.Equal(t, "1A", result.Arrivals.Lines[0].LineName)
	assert.Equal(t, "llegando", result.Arrivals.Lines[0].Buses[0].ETALabel)
	assert.Equal(t, 1, client.calls)
}

func TestRunWithoutCatalog(t *testing.T) {
	client := &fakeFetcher{payload: arrivalsPayload()}

	result := Run(context.Background(), setup(nil, client), Request{StopID: intPtr(77)})

	require.True(t, result.OK)
	assert.Equal(t, "Parada 77", result.Query.StopName)
	assert.Equal(t, resolver.MatchStopID, result.Query.MatchedBy)
	assert.False(t, result.Source.CatalogLoaded)
	assert.Equal(t, "2300", result.Arrivals.Lines[1].LineName)
}

func TestRunBusAtStop(t *testing.T) {
	client := &fakeFetcher{payload: arrivalsPayload()}
	aggregator := setup(testCatalog(), client)

	result := Run(context.Background(), aggregator, Request{StopID: intPtr(523), BusID: intPtr(3501)})
	require.True(t, result.OK)
	assert.Equal(t, ModeBusAtStop, result.Mode)
	assert.Equal(t, 1100, result.Line.LineID)
	assert.Equal(t, 3501, result.Bus.BusID)
	assert.Nil(t, result.Arrivals)

	missing := Run(context.Background(), aggregator, Request{StopID: intPtr(523), BusID: intPtr(1)})
	assert.False(t, missing.OK)
	assert.False(t, missing.Failed())
	assert.Equal(t, "Bus 1 not found at stop 523.", missing.Message)
	assert.NotNil(t, missing.Query)
}

func TestRunLineAtStop(t *testing.T) {
	client := &fakeFetcher{payload: arrivalsPayload()}
	aggregator := setup(testCatalog(), client)

	result := Run(context.Background(), aggregator, Request{StopID: intPtr(523), LineName: "1a"})
	require.True(t, result.OK)
	assert.Equal(t, ModeLineAtStop, result.Mode)
	assert.Equal(t, 1100, *result.Query.LineID)
	assert.Equal(t, resolver.MatchLineName, *result.Query.LineMatch)
	assert.Equal(t, "1a", *result.Query.LineName)
	assert.Len(t, result.Line.Buses, 2)

	absent := Run(context.Background(), aggregator, Request{StopID: intPtr(523), LineName: "3"})
	assert.False(t, absent.OK)
	assert.Equal(t, "Line 300 has no arrivals at stop 523.", absent.Message)
	assert.Equal(t, 300, *absent.Query.LineID)

	byID := Run(context.Background(), aggregator, Request{StopID: intPtr(523), LineID: intPtr(2300)})
	require.True(t, byID.OK)
	assert.Equal(t, resolver.MatchLineID, *byID.Query.LineMatch)
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name    string
		catalog *ctdf.Catalog
		client  *fakeFetcher
		request Request
		code    string
		message string
	}{
		{
			name:    "no stop selector",
			request: Request{BusID: intPtr(1)},
			code:    ErrorStopSelectorRequired,
			message: "Provide --stop-id or --stop-name.",
		},
		{
			name:    "bus and line",
			request: Request{StopID: intPtr(1), BusID: intPtr(1), LineName: "1A"},
			code:    ErrorSelectorConflict,
			message: "Use either bus selector or line selector, not both.",
		},
		{
			name:    "stop name without catalog",
			request: Request{StopName: "Praza"},
			code:    ErrorStopResolution,
			message: "Cannot resolve stop: catalog_required_for_stop_name.",
		},
		{
			name:    "ambiguous stop",
			catalog: testCatalog(),
			request: Request{StopName: "Praza"},
			code:    ErrorStopResolution,
			message: "Cannot resolve stop: stop_name_ambiguous.",
		},
		{
			name:    "upstream failure",
			client:  &fakeFetcher{err: &fetcher.FetchError{Code: fetcher.ErrorCodeInvalidRoot, Message: "JSON root is not an object"}},
			request: Request{StopID: intPtr(1)},
			code:    ErrorAPI,
			message: "invalid_json_root: JSON root is not an object",
		},
		{
			name:    "line name without catalog",
			request: Request{StopID: intPtr(1), LineName: "1A"},
			code:    ErrorLineResolution,
			message: "Cannot resolve line: catalog_required_for_line_name.",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := test.client
			if client == nil {
				client = &fakeFetcher{payload: arrivalsPayload()}
			}

			result := Run(context.Background(), setup(test.catalog, client), test.request)

			assert.False(t, result.OK)
			assert.True(t, result.Failed())
			assert.Equal(t, test.code, result.ErrorCode)
			assert.Equal(t, test.message, result.Message)
			assert.Nil(t, result.Query)
		})
	}
}

func TestSelectorFailuresSkipNetwork(t *testing.T) {
	client := &fakeFetcher{payload: arrivalsPayload()}

	Run(context.Background(), setup(testCatalog(), client), Request{})
	Run(context.Background(), setup(testCatalog(), client), Request{StopID: intPtr(1), BusID: intPtr(1), LineID: intPtr(1)})
	Run(context.Background(), setup(testCatalog(), client), Request{StopName: "nowhere"})

	assert.Equal(t, 0, client.calls)
}

func TestResultJSON(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, util.WriteJSON(&buffer, failure("Provide --stop-id or --stop-name.", ErrorStopSelectorRequired), false))
	assert.JSONEq(t, `{"ok": false, "message": "Provide --stop-id or --stop-name.", "error_code": "stop_selector_required"}`, buffer.String())

	client := &fakeFetcher{payload: arrivalsPayload()}
	result := Run(context.Background(), setup(nil, client), Request{StopID: intPtr(5), BusID: intPtr(1)})

	var decoded map[string]any
	buffer.Reset()
	require.NoError(t, util.WriteJSON(&buffer, result, true))
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))

	assert.Equal(t, false, decoded["ok"])
	assert.Equal(t, "bus_at_stop", decoded["mode"])
	assert.NotContains(t, decoded, "error_code")
	assert.NotContains(t, decoded, "arrivals")
	queryFields := decoded["query"].(map[string]any)
	assert.Nil(t, queryFields["line_id"])
	assert.Contains(t, queryFields, "line_name")
	assert.NotContains(t, queryFields, "line_match")
}
