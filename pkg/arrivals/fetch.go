package arrivals

import (
	"context"

	"github.com/travigo/coruna-bus/pkg/config"
	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/fetcher"
)

// Fetch downloads the live arrivals of stopID from the URL built from
// urlTemplate and assembles them
func Fetch(ctx context.Context, client fetcher.JSONFetcher, urlTemplate string, stopID int, options fetcher.Options, lineMetadata map[int]ctdf.LineMetadata) (*ctdf.Arrivals, error) {
	apiURL := config.ExpandArrivalsURL(urlTemplate, stopID)

	payload, err := client.FetchJSON(ctx, apiURL, options)
	if err != nil {
		return nil, err
	}

	return Assemble(stopID, payload, apiURL, lineMetadata), nil
}
