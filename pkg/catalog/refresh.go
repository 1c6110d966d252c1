package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/coruna-bus/pkg/fetcher"
)

// Summary describes a completed refresh
type Summary struct {
	OK          bool      `json:"ok"`
	Output      string    `json:"output"`
	GeneratedAt time.Time `json:"generated_at"`
	Stops       int       `json:"stops"`
	Lines       int       `json:"lines"`
	SourceURL   string    `json:"source_url"`
}

// Refresh downloads the catalog from sourceURL and replaces the stored
// snapshot. The previous snapshot is untouched when any step fails.
func Refresh(ctx context.Context, client fetcher.JSONFetcher, store Store, sourceURL string, options fetcher.Options) (*Summary, error) {
	payload, err := client.FetchJSON(ctx, sourceURL, options)
	if err != nil {
		return nil, err
	}

	catalog := Build(payload, sourceURL, time.Now().UTC())

	if err := store.Save(ctx, catalog); err != nil {
		return nil, fmt.Errorf("saving catalog to %s: %w", store.Describe(), err)
	}

	log.Info().
		Str("store", store.Describe()).
		Int("stops", len(catalog.Stops)).
		Int("lines", len(catalog.Lines)).
		Msg("Catalog refreshed")

	return &Summary{
		OK:          true,
		Output:      store.Describe(),
		GeneratedAt: catalog.GeneratedAt,
		Stops:       len(catalog.Stops),
		Lines:       len(catalog.Lines),
		SourceURL:   catalog.SourceURL,
	}, nil
}
