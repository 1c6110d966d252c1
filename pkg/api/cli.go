package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/coruna-bus/pkg/api/routes"
	"github.com/travigo/coruna-bus/pkg/config"
	"github.com/travigo/coruna-bus/pkg/dataaggregator/global"
	"github.com/travigo/coruna-bus/pkg/fetcher"
	"github.com/travigo/coruna-bus/pkg/stopboard"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the stop board web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "read the catalog from this JSON file instead of the configured store",
					},
				}, fetcher.CLIFlags()...),
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					options, err := fetcher.OptionsFromCLI(c, cfg, cfg.Timeout())
					if err != nil {
						return err
					}

					snapshot, source := stopboard.LoadCatalog(c, cfg)

					aggregator := global.Setup(cfg, snapshot, fetcher.NewDefault(cfg.CurlPath), options)

					log.Info().
						Str("listen", c.String("listen")).
						Str("catalog", source).
						Bool("catalog_loaded", snapshot != nil).
						Msg("Starting web API")

					return SetupServer(c.String("listen"), &routes.Environment{
						Aggregator:    aggregator,
						CatalogSource: source,
					})
				},
			},
		},
	}
}
