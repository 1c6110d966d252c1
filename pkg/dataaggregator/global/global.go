package global

import (
	"github.com/travigo/coruna-bus/pkg/config"
	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/dataaggregator"
	"github.com/travigo/coruna-bus/pkg/dataaggregator/source/catalogsource"
	"github.com/travigo/coruna-bus/pkg/dataaggregator/source/itranvias"
	"github.com/travigo/coruna-bus/pkg/fetcher"
)

// Setup wires the catalog and iTranvias sources into a new aggregator
func Setup(cfg *config.Config, catalog *ctdf.Catalog, client fetcher.JSONFetcher, options fetcher.Options) *dataaggregator.Aggregator {
	aggregator := dataaggregator.New()

	aggregator.RegisterSource(catalogsource.Source{
		Catalog: catalog,
	})

	aggregator.RegisterSource(itranvias.Source{
		Fetcher:      client,
		URLTemplate:  cfg.ArrivalsURLTemplate,
		Options:      options,
		LineMetadata: catalog.LineMetadata(),
	})

	return aggregator
}
