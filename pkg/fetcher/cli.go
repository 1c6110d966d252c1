package fetcher

import (
	"fmt"
	"time"

	"github.com/travigo/coruna-bus/pkg/config"
	"github.com/urfave/cli/v2"
)

// CLIFlags are the request flags shared by every command that talks to iTranvias
func CLIFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:  "timeout-seconds",
			Usage: "HTTP timeout per attempt",
		},
		&cli.StringFlag{
			Name:  "request-profile",
			Usage: "HTTP header profile: auto, default or browser. auto tries default then browser",
		},
		&cli.IntFlag{
			Name:  "retry-403",
			Usage: "extra retries when the API returns 403/429",
		},
		&cli.BoolFlag{
			Name:  "disable-http-fallback",
			Usage: "disable https to http fallback attempts",
		},
		&cli.BoolFlag{
			Name:  "trust-unknown-status",
			Usage: "accept curl responses whose status code could not be read",
		},
	}
}

// OptionsFromConfig maps the configured request settings onto fetch options
func OptionsFromConfig(cfg *config.Config, timeout time.Duration) Options {
	return Options{
		Timeout:            timeout,
		Profile:            Profile(cfg.RequestProfile),
		RetryCount:         cfg.Retry403,
		AllowHTTPFallback:  cfg.AllowHTTPFallback,
		TrustUnknownStatus: cfg.TrustUnknownStatus,
	}
}

// OptionsFromCLI applies the flags that were set on top of the configured options
func OptionsFromCLI(c *cli.Context, cfg *config.Config, timeout time.Duration) (Options, error) {
	options := OptionsFromConfig(cfg, timeout)

	if c.IsSet("timeout-seconds") {
		options.Timeout = time.Duration(c.Float64("timeout-seconds") * float64(time.Second))
	}
	if c.IsSet("request-profile") {
		profile := Profile(c.String("request-profile"))
		switch profile {
		case ProfileAuto, ProfileDefault, ProfileBrowser:
			options.Profile = profile
		default:
			return options, fmt.Errorf("invalid request profile %q", profile)
		}
	}
	if c.IsSet("retry-403") {
		options.RetryCount = max(0, c.Int("retry-403"))
	}
	if c.Bool("disable-http-fallback") {
		options.AllowHTTPFallback = false
	}
	if c.Bool("trust-unknown-status") {
		options.TrustUnknownStatus = true
	}

	return options, nil
}
