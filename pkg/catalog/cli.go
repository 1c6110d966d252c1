package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/coruna-bus/pkg/config"
	"github.com/travigo/coruna-bus/pkg/fetcher"
	"github.com/travigo/coruna-bus/pkg/util"
	"github.com/urfave/cli/v2"
)

type statusResult struct {
	OK          bool      `json:"ok"`
	Store       string    `json:"store"`
	GeneratedAt time.Time `json:"generated_at"`
	SourceURL   string    `json:"source_url"`
	Stops       int       `json:"stops"`
	Lines       int       `json:"lines"`
	MaxAge      string    `json:"max_age"`
	Stale       bool      `json:"stale"`
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Manage the static stop and line catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "refresh",
				Usage: "download the catalog (func=7) and replace the stored snapshot",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "write the snapshot to this JSON file instead of the configured store",
					},
					&cli.StringFlag{
						Name:  "stops-url",
						Usage: "catalog endpoint URL",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "pretty print the summary",
					},
				}, fetcher.CLIFlags()...),
				Action: refreshAction,
			},
			{
				Name:  "status",
				Usage: "describe the stored snapshot",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "read the snapshot from this JSON file instead of the configured store",
					},
				},
				Action: statusAction,
			},
			{
				Name:  "export",
				Usage: "export the stops or lines of the stored snapshot",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "read the snapshot from this JSON file instead of the configured store",
					},
					&cli.StringFlag{
						Name:  "kind",
						Value: string(ExportStops),
						Usage: "stops or lines",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: string(FormatCSV),
						Usage: "csv or json",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "output file, defaults to stdout",
					},
				},
				Action: exportAction,
			},
			{
				Name:  "inspect",
				Usage: "dump a single stop or line of the stored snapshot",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "read the snapshot from this JSON file instead of the configured store",
					},
					&cli.IntFlag{
						Name:  "stop-id",
						Usage: "stop to dump",
					},
					&cli.IntFlag{
						Name:  "line-id",
						Usage: "line to dump",
					},
				},
				Action: inspectAction,
			},
		},
	}
}

// OpenStore returns a file store for path when given, otherwise the configured store
func OpenStore(c *cli.Context, cfg *config.Config, path string) (Store, error) {
	if path != "" {
		return NewFileStore(path), nil
	}

	return NewStore(c.Context, cfg)
}

func refreshAction(c *cli.Context) error {
	prettyPrint := c.Bool("pretty")

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	options, err := fetcher.OptionsFromCLI(c, cfg, cfg.CatalogTimeout())
	if err != nil {
		return err
	}

	sourceURL := cfg.CatalogURL
	if c.IsSet("stops-url") {
		sourceURL = c.String("stops-url")
	}

	store, err := OpenStore(c, cfg, c.String("output"))
	if err != nil {
		return err
	}

	summary, err := Refresh(c.Context, fetcher.NewDefault(cfg.CurlPath), store, sourceURL, options)
	var fetchErr *fetcher.FetchError
	if errors.As(err, &fetchErr) {
		util.WriteJSON(os.Stdout, util.NewErrorResult(fetchErr.Error(), "api_error"), false)
		return cli.Exit("", 2)
	}
	if err != nil {
		return err
	}

	return util.WriteJSON(os.Stdout, summary, prettyPrint)
}

func statusAction(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	store, err := OpenStore(c, cfg, c.String("catalog"))
	if err != nil {
		return err
	}

	catalog, err := store.Load(c.Context)
	if err != nil {
		return err
	}
	if catalog == nil {
		util.WriteJSON(os.Stdout, util.NewErrorResult(fmt.Sprintf("No catalog snapshot in %s.", store.Describe()), "catalog_missing"), true)
		return cli.Exit("", 2)
	}

	maxAge, err := cfg.MaxAge()
	if err != nil {
		return err
	}

	return util.WriteJSON(os.Stdout, statusResult{
		OK:          true,
		Store:       store.Describe(),
		GeneratedAt: catalog.GeneratedAt,
		SourceURL:   catalog.SourceURL,
		Stops:       len(catalog.Stops),
		Lines:       len(catalog.Lines),
		MaxAge:      cfg.CatalogMaxAge,
		Stale:       IsStale(catalog, time.Now(), maxAge),
	}, true)
}

func exportAction(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	store, err := OpenStore(c, cfg, c.String("catalog"))
	if err != nil {
		return err
	}

	catalog, err := store.Load(c.Context)
	if err != nil {
		return err
	}
	if catalog == nil {
		return cli.Exit(fmt.Sprintf("no catalog snapshot in %s", store.Describe()), 2)
	}

	var output io.Writer = os.Stdout
	if path := c.String("output"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		output = file
	}

	if err := Export(output, catalog, ExportKind(c.String("kind")), ExportFormat(c.String("format"))); err != nil {
		return err
	}

	log.Debug().Str("kind", c.String("kind")).Str("format", c.String("format")).Msg("Catalog exported")

	return nil
}

func inspectAction(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	store, err := OpenStore(c, cfg, c.String("catalog"))
	if err != nil {
		return err
	}

	catalog, err := store.Load(c.Context)
	if err != nil {
		return err
	}
	if catalog == nil {
		return cli.Exit(fmt.Sprintf("no catalog snapshot in %s", store.Describe()), 2)
	}

	switch {
	case c.IsSet("stop-id"):
		stop, ok := catalog.GetStop(c.Int("stop-id"))
		if !ok {
			return cli.Exit(fmt.Sprintf("stop %d not in catalog", c.Int("stop-id")), 2)
		}
		pretty.Println(stop)
	case c.IsSet("line-id"):
		line, ok := catalog.GetLine(c.Int("line-id"))
		if !ok {
			return cli.Exit(fmt.Sprintf("line %d not in catalog", c.Int("line-id")), 2)
		}
		pretty.Println(line)
	default:
		return cli.Exit("provide --stop-id or --line-id", 2)
	}

	return nil
}
