package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/coruna-bus/pkg/api"
	"github.com/travigo/coruna-bus/pkg/catalog"
	"github.com/travigo/coruna-bus/pkg/stopboard"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	// stdout carries the JSON results, so logs go to stderr
	if os.Getenv("CORUNABUS_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	if os.Getenv("CORUNABUS_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "coruna-bus",
		Description: "Live bus arrivals and network catalog for A Coruña",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a YAML config file",
			},
		},

		Commands: []*cli.Command{
			stopboard.RegisterCLI(),
			catalog.RegisterCLI(),
			api.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		log.Fatal().Err(err).Send()
	}
}
