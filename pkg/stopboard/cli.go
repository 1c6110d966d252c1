package stopboard

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/coruna-bus/pkg/catalog"
	"github.com/travigo/coruna-bus/pkg/config"
	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/dataaggregator/global"
	"github.com/travigo/coruna-bus/pkg/fetcher"
	"github.com/travigo/coruna-bus/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "arrivals",
		Usage: "Query live bus arrivals",
		Subcommands: []*cli.Command{
			{
				Name:  "query",
				Usage: "arrivals at a stop, optionally narrowed to a bus or a line",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "stop-id",
						Usage: "stop ID",
					},
					&cli.StringFlag{
						Name:  "stop-name",
						Usage: "stop name (requires a catalog)",
					},
					&cli.IntFlag{
						Name:  "bus-id",
						Usage: "specific bus ID for a stop and bus query",
					},
					&cli.IntFlag{
						Name:  "line-id",
						Usage: "specific line ID for a stop and line query",
					},
					&cli.StringFlag{
						Name:  "line-name",
						Usage: "specific line name (requires a catalog unless numeric)",
					},
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "read the catalog from this JSON file instead of the configured store",
					},
					&cli.StringFlag{
						Name:  "arrivals-url-template",
						Usage: "arrivals URL template containing {stop_id}",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "pretty print the result",
					},
				}, fetcher.CLIFlags()...),
				Action: queryAction,
			},
		},
	}
}

func queryAction(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	options, err := fetcher.OptionsFromCLI(c, cfg, cfg.Timeout())
	if err != nil {
		return err
	}

	if c.IsSet("arrivals-url-template") {
		cfg.ArrivalsURLTemplate = c.String("arrivals-url-template")
	}

	snapshot, source := LoadCatalog(c, cfg)

	aggregator := global.Setup(cfg, snapshot, fetcher.NewDefault(cfg.CurlPath), options)

	result := Run(c.Context, aggregator, Request{
		StopID:        optionalInt(c, "stop-id"),
		StopName:      c.String("stop-name"),
		BusID:         optionalInt(c, "bus-id"),
		LineID:        optionalInt(c, "line-id"),
		LineName:      c.String("line-name"),
		CatalogSource: source,
	})

	if err := util.WriteJSON(os.Stdout, result, c.Bool("pretty")); err != nil {
		return err
	}

	if result.Failed() {
		return cli.Exit("", 2)
	}

	return nil
}

// LoadCatalog returns the stored catalog, or nil when none can be read
func LoadCatalog(c *cli.Context, cfg *config.Config) (*ctdf.Catalog, string) {
	store, err := catalog.OpenStore(c, cfg, c.String("catalog"))
	if err != nil {
		log.Warn().Err(err).Msg("Catalog store unavailable, continuing without catalog")
		return nil, cfg.CatalogStore
	}

	snapshot, err := store.Load(c.Context)
	if err != nil {
		log.Warn().Err(err).Str("store", store.Describe()).Msg("Could not load catalog, continuing without catalog")
		return nil, store.Describe()
	}

	if snapshot != nil {
		maxAge, err := cfg.MaxAge()
		if err == nil && catalog.IsStale(snapshot, time.Now(), maxAge) {
			log.Warn().
				Time("generated_at", snapshot.GeneratedAt).
				Str("max_age", cfg.CatalogMaxAge).
				Msg("Catalog snapshot is stale, run catalog refresh")
		}
	}

	return snapshot, store.Describe()
}

func optionalInt(c *cli.Context, name string) *int {
	if !c.IsSet(name) {
		return nil
	}

	value := c.Int(name)
	return &value
}
