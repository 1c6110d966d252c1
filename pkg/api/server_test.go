package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/coruna-bus/pkg/api/routes"
	"github.com/travigo/coruna-bus/pkg/config"
	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/dataaggregator/global"
	"github.com/travigo/coruna-bus/pkg/fetcher"
)

type fakeFetcher struct {
	mutex sync.Mutex
	urls  []string
	fail  bool
}

func (f *fakeFetcher) FetchJSON(ctx context.Context, rawURL string, options fetcher.Options) (map[string]any, error) {
	f.mutex.Lock()
	f.urls = append(f.urls, rawURL)
	f.mutex.Unlock()

	if f.fail {
		return nil, &fetcher.FetchError{Code: fetcher.ErrorCodeUnavailable, Message: "API unavailable"}
	}

	return map[string]any{
		"buses": map[string]any{
			"lineas": []any{
				map[string]any{"linea": 1100.0, "buses": []any{
					map[string]any{"bus": 3501.0, "tiempo": 2.0},
				}},
			},
		},
	}, nil
}

func strPtr(s string) *string {
	return &s
}

func testCatalog() *ctdf.Catalog {
	return &ctdf.Catalog{
		Stops: []ctdf.Stop{
			{ID: 523, Name: "Praza de España", Lines: []int{1100}},
			{ID: 524, Name: "Praza de Pontevedra", Lines: []int{1100}},
			{ID: 42, Name: "Abente y Lago", Lines: []int{}},
		},
		Lines: []ctdf.Line{
			{
				ID: 1100, Name: "1A", CommercialName: "1A", ColorHex: strPtr("#ff0000"),
				Directions: []ctdf.Direction{ctdf.DirectionIda},
				RouteVariants: []ctdf.RouteVariant{
					{RouteIndex: 0, Direction: ctdf.DirectionIda, StopIDs: []int{523, 524}, StopCount: 2},
				},
			},
		},
	}
}

func newTestApp(catalog *ctdf.Catalog, client *fakeFetcher) *httptestApp {
	cfg := config.Default()
	aggregator := global.Setup(&cfg, catalog, client, fetcher.DefaultOptions())

	return &httptestApp{app: NewApp(&routes.Environment{
		Aggregator:    aggregator,
		CatalogSource: "memory",
	})}
}

type httptestApp struct {
	app *fiber.App
}

func (a *httptestApp) get(t *testing.T, target string) (int, []byte) {
	t.Helper()

	response, err := a.app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	return response.StatusCode, body
}

func TestVersion(t *testing.T) {
	status, body := newTestApp(nil, &fakeFetcher{}).get(t, "/core/version")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"service": "coruna-bus", "version": "v1.0"}`, string(body))
}

func TestListStops(t *testing.T) {
	app := newTestApp(testCatalog(), &fakeFetcher{})

	status, body := app.get(t, "/core/stops?name=praza")
	require.Equal(t, http.StatusOK, status)

	var stops []map[string]any
	require.NoError(t, json.Unmarshal(body, &stops))
	require.Len(t, stops, 2)
	assert.Equal(t, 523.0, stops[0]["id"])
	assert.Equal(t, 524.0, stops[1]["id"])

	status, _ = app.get(t, "/core/stops")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetStop(t *testing.T) {
	tests := []struct {
		name      string
		catalog   *ctdf.Catalog
		target    string
		status    int
		matchedBy string
	}{
		{name: "by id", catalog: testCatalog(), target: "/core/stops/42", status: http.StatusOK, matchedBy: "stop_id"},
		{name: "by name", catalog: testCatalog(), target: "/core/stops/Abente%20y%20Lago", status: http.StatusOK, matchedBy: "stop_name_exact"},
		{name: "ambiguous", catalog: testCatalog(), target: "/core/stops/praza", status: http.StatusConflict},
		{name: "not found", catalog: testCatalog(), target: "/core/stops/nowhere", status: http.StatusNotFound},
		{name: "no catalog", target: "/core/stops/praza", status: http.StatusBadRequest},
		{name: "unknown id without catalog", target: "/core/stops/99", status: http.StatusOK, matchedBy: "stop_id"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, body := newTestApp(test.catalog, &fakeFetcher{}).get(t, test.target)
			assert.Equal(t, test.status, status)

			var decoded map[string]any
			require.NoError(t, json.Unmarshal(body, &decoded))
			if test.matchedBy != "" {
				assert.Equal(t, test.matchedBy, decoded["matched_by"])
			} else {
				assert.Contains(t, decoded, "error")
			}
		})
	}
}

func TestGetStopArrivals(t *testing.T) {
	client := &fakeFetcher{}
	app := newTestApp(testCatalog(), client)

	status, body := app.get(t, "/core/stops/523/arrivals")
	require.Equal(t, http.StatusOK, status)

	var result map[string]any
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, true, result["ok"])
	assert.Equal(t, "stop_arrivals", result["mode"])
	assert.Equal(t, []string{"https://itranvias.com/queryitr_v3.php?func=0&dato=523"}, client.urls)

	status, _ = app.get(t, "/core/stops/523/arrivals?bus=3501")
	assert.Equal(t, http.StatusOK, status)

	status, _ = app.get(t, "/core/stops/523/arrivals?line=1A")
	assert.Equal(t, http.StatusOK, status)

	status, _ = app.get(t, "/core/stops/523/arrivals?bus=9")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = app.get(t, "/core/stops/523/arrivals?bus=x")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = app.get(t, "/core/stops/523/arrivals?bus=3501&line=1A")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "selector_conflict")
}

func TestGetStopArrivalsUpstreamFailure(t *testing.T) {
	status, body := newTestApp(nil, &fakeFetcher{fail: true}).get(t, "/core/stops/523/arrivals")

	assert.Equal(t, http.StatusBadGateway, status)
	assert.JSONEq(t, `{"ok": false, "message": "api_unavailable: API unavailable", "error_code": "api_error"}`, string(body))
}

func TestLines(t *testing.T) {
	app := newTestApp(testCatalog(), &fakeFetcher{})

	status, body := app.get(t, "/core/lines")
	require.Equal(t, http.StatusOK, status)

	var lines []map[string]any
	require.NoError(t, json.Unmarshal(body, &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, "1A", lines[0]["name"])
	assert.NotContains(t, lines[0], "route_variants")

	status, body = app.get(t, "/core/lines/1a")
	require.Equal(t, http.StatusOK, status)

	var line map[string]any
	require.NoError(t, json.Unmarshal(body, &line))
	assert.Equal(t, 1100.0, line["id"])
	assert.Len(t, line["route_variants"], 1)

	status, _ = app.get(t, "/core/lines/77")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = newTestApp(nil, &fakeFetcher{}).get(t, "/core/lines/1A")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBoard(t *testing.T) {
	client := &fakeFetcher{}
	app := newTestApp(testCatalog(), client)

	status, body := app.get(t, "/core/arrivals?stops=524,523,524")
	require.Equal(t, http.StatusOK, status)

	var board []struct {
		StopID int            `json:"stop_id"`
		Result map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal(body, &board))
	require.Len(t, board, 2)
	assert.Equal(t, 523, board[0].StopID)
	assert.Equal(t, 524, board[1].StopID)
	assert.Equal(t, true, board[1].Result["ok"])
	assert.Len(t, client.urls, 2)

	status, _ = app.get(t, "/core/arrivals?stops=1,a")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = app.get(t, "/core/arrivals")
	assert.Equal(t, http.StatusBadRequest, status)
}
