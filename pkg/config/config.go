package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/senseyeio/duration"
	"github.com/travigo/coruna-bus/pkg/util"
	"gopkg.in/yaml.v3"
)

const EnvironmentPrefix = "CORUNABUS_"

const (
	DefaultCatalogURL          = "https://itranvias.com/queryitr_v3.php?dato=20160101T000000_gl_0_20160101T000000&func=7"
	DefaultArrivalsURLTemplate = "https://itranvias.com/queryitr_v3.php?func=0&dato={stop_id}"

	StopIDPlaceholder = "{stop_id}"
)

type Config struct {
	CatalogURL          string `yaml:"catalog_url" validate:"required,url"`
	ArrivalsURLTemplate string `yaml:"arrivals_url_template" validate:"required,contains={stop_id}"`

	TimeoutSeconds        float64 `yaml:"timeout_seconds" validate:"gt=0"`
	CatalogTimeoutSeconds float64 `yaml:"catalog_timeout_seconds" validate:"gt=0"`
	RequestProfile        string  `yaml:"request_profile" validate:"oneof=auto default browser"`
	Retry403              int     `yaml:"retry_403" validate:"gte=0"`
	AllowHTTPFallback     bool    `yaml:"allow_http_fallback"`
	TrustUnknownStatus    bool    `yaml:"trust_unknown_status"`
	CurlPath              string  `yaml:"curl_path" validate:"required"`

	CatalogStore  string `yaml:"catalog_store" validate:"oneof=file redis mongo"`
	CatalogPath   string `yaml:"catalog_path" validate:"required_if=CatalogStore file"`
	CatalogMaxAge string `yaml:"catalog_max_age" validate:"required"`

	Redis RedisConfig `yaml:"redis"`
	Mongo MongoConfig `yaml:"mongo"`
}

type RedisConfig struct {
	Address  string `yaml:"address" validate:"required"`
	Password string `yaml:"password"`
	Database int    `yaml:"database" validate:"gte=0"`
}

type MongoConfig struct {
	Connection string `yaml:"connection" validate:"required"`
	Database   string `yaml:"database" validate:"required"`
}

func Default() Config {
	return Config{
		CatalogURL:            DefaultCatalogURL,
		ArrivalsURLTemplate:   DefaultArrivalsURLTemplate,
		TimeoutSeconds:        10,
		CatalogTimeoutSeconds: 20,
		RequestProfile:        "auto",
		Retry403:              2,
		AllowHTTPFallback:     true,
		CurlPath:              "curl",
		CatalogStore:          "file",
		CatalogPath:           "data/coruna_catalog.json",
		CatalogMaxAge:         "P7D",
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
		Mongo: MongoConfig{
			Connection: "mongodb://localhost:27017/",
			Database:   "coruna_bus",
		},
	}
}

// Load builds the configuration from the defaults, the optional YAML file at
// path and finally the CORUNABUS_ environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvironment(util.GetPrefixedEnvironmentVariables(EnvironmentPrefix)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if _, err := c.MaxAge(); err != nil {
		return fmt.Errorf("catalog_max_age: %w", err)
	}

	return nil
}

func (c *Config) applyEnvironment(env map[string]string) error {
	var errs []error

	setString := func(key string, target *string) {
		if value, ok := env[key]; ok {
			*target = value
		}
	}
	setFloat := func(key string, target *float64) {
		if value, ok := env[key]; ok {
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvironmentPrefix, key, err))
				return
			}
			*target = parsed
		}
	}
	setInt := func(key string, target *int) {
		if value, ok := env[key]; ok {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvironmentPrefix, key, err))
				return
			}
			*target = parsed
		}
	}
	setBool := func(key string, target *bool) {
		if value, ok := env[key]; ok {
			*target = strings.EqualFold(value, "YES") || strings.EqualFold(value, "TRUE") || value == "1"
		}
	}

	setString("CATALOG_URL", &c.CatalogURL)
	setString("ARRIVALS_URL_TEMPLATE", &c.ArrivalsURLTemplate)
	setFloat("TIMEOUT_SECONDS", &c.TimeoutSeconds)
	setFloat("CATALOG_TIMEOUT_SECONDS", &c.CatalogTimeoutSeconds)
	setString("REQUEST_PROFILE", &c.RequestProfile)
	setInt("RETRY_403", &c.Retry403)
	setBool("ALLOW_HTTP_FALLBACK", &c.AllowHTTPFallback)
	setBool("TRUST_UNKNOWN_STATUS", &c.TrustUnknownStatus)
	setString("CURL_PATH", &c.CurlPath)
	setString("CATALOG_STORE", &c.CatalogStore)
	setString("CATALOG_PATH", &c.CatalogPath)
	setString("CATALOG_MAX_AGE", &c.CatalogMaxAge)
	setString("REDIS_ADDRESS", &c.Redis.Address)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setInt("REDIS_DATABASE", &c.Redis.Database)
	setString("MONGODB_CONNECTION", &c.Mongo.Connection)
	setString("MONGODB_DATABASE", &c.Mongo.Database)

	return errors.Join(errs...)
}

// MaxAge parses the ISO8601 catalog_max_age value
func (c *Config) MaxAge() (duration.Duration, error) {
	return duration.ParseISO8601(c.CatalogMaxAge)
}

func (c *Config) Timeout() time.Duration {
	return secondsToDuration(c.TimeoutSeconds)
}

func (c *Config) CatalogTimeout() time.Duration {
	return secondsToDuration(c.CatalogTimeoutSeconds)
}

// ArrivalsURL fills the stop placeholder of the arrivals template
func (c *Config) ArrivalsURL(stopID int) string {
	return ExpandArrivalsURL(c.ArrivalsURLTemplate, stopID)
}

func ExpandArrivalsURL(template string, stopID int) string {
	return strings.ReplaceAll(template, StopIDPlaceholder, strconv.Itoa(stopID))
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
