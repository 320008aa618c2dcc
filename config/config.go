// Package config holds the immutable run configuration: the catalog
// lookup table, collaborator endpoints and fetch behavior.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	str2duration "github.com/xhit/go-str2duration/v2"
)

const (
	defaultSiteURL       = "https://tamilblasters.cloud"
	defaultRedisAddr     = "localhost:6379"
	defaultDatabasePath  = "movies.db"
	defaultMetricsAddr   = ":8081"
	defaultFetchTimeout  = "30s"
	defaultDetailTimeout = "45s"
	defaultWorkers       = 4
)

// Redis configures the document cache.
type Redis struct {
	Addr string `toml:"addr"`
}

// FlareSolverr configures the optional anti-bot challenge solver.
type FlareSolverr struct {
	URL          string `toml:"url"`
	TimeoutMilli int    `toml:"timeout_milli"`
}

// Database configures the metadata store.
type Database struct {
	Path string `toml:"path"`
}

// Metrics configures the Prometheus endpoint served during a run.
type Metrics struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// Fetch configures request behavior. Timeouts are human-readable
// duration strings such as "30s" or "1m30s".
type Fetch struct {
	Timeout       string `toml:"timeout"`
	DetailTimeout string `toml:"detail_timeout"`
	Workers       int    `toml:"workers"`
}

// Config is the full run configuration. Catalogs maps a language to its
// video-type forum paths; the resulting page URL is
// <site_url>/index.php?/forums/forum/<path>.
type Config struct {
	SiteURL      string                       `toml:"site_url"`
	Catalogs     map[string]map[string]string `toml:"catalogs"`
	Redis        Redis                        `toml:"redis"`
	FlareSolverr FlareSolverr                 `toml:"flaresolverr"`
	Database     Database                     `toml:"database"`
	Metrics      Metrics                      `toml:"metrics"`
	Fetch        Fetch                        `toml:"fetch"`

	fetchTimeout  time.Duration
	detailTimeout time.Duration
}

// Default returns the built-in configuration: the tamil catalogs the
// site has always had, localhost collaborators, no challenge solver.
func Default() *Config {
	return &Config{
		SiteURL: defaultSiteURL,
		Catalogs: map[string]map[string]string{
			"tamil": {
				"hdrip": "7-tamil-new-movies-hdrips-bdrips-dvdrips-hdtv",
				"tcrip": "8-tamil-new-movies-tcrip-dvdscr-hdcam-predvd",
			},
		},
		Redis:    Redis{Addr: defaultRedisAddr},
		Database: Database{Path: defaultDatabasePath},
		Metrics:  Metrics{Addr: defaultMetricsAddr},
		Fetch: Fetch{
			Timeout:       defaultFetchTimeout,
			DetailTimeout: defaultDetailTimeout,
			Workers:       defaultWorkers,
		},
	}
}

// Load reads a TOML config file over the defaults. An empty path or a
// missing file yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and resolves duration strings.
func (c *Config) Validate() error {
	if c.SiteURL == "" {
		return errors.New("site_url must not be empty")
	}
	if len(c.Catalogs) == 0 {
		return errors.New("at least one catalog must be configured")
	}
	if c.Fetch.Workers < 1 {
		return fmt.Errorf("fetch.workers must be >= 1, got %d", c.Fetch.Workers)
	}

	var err error
	c.fetchTimeout, err = str2duration.ParseDuration(c.Fetch.Timeout)
	if err != nil {
		return fmt.Errorf("fetch.timeout: %w", err)
	}
	c.detailTimeout, err = str2duration.ParseDuration(c.Fetch.DetailTimeout)
	if err != nil {
		return fmt.Errorf("fetch.detail_timeout: %w", err)
	}
	return nil
}

// FetchTimeout is the HTTP client timeout for every request.
func (c *Config) FetchTimeout() time.Duration { return c.fetchTimeout }

// DetailTimeout bounds a single detail-page visit so one hanging page
// cannot stall the rest of its listing page.
func (c *Config) DetailTimeout() time.Duration { return c.detailTimeout }

// CatalogURL resolves the listing base URL for a (language, video type)
// pair. ok is false when the pair is not in the catalog table.
func (c *Config) CatalogURL(language, videoType string) (string, bool) {
	types, ok := c.Catalogs[language]
	if !ok {
		return "", false
	}
	path, ok := types[videoType]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s/index.php?/forums/forum/%s", c.SiteURL, path), true
}
