package cmd

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/moviestream/tamilblasters-indexer/cache"
	"github.com/moviestream/tamilblasters-indexer/config"
	"github.com/moviestream/tamilblasters-indexer/logging"
	"github.com/moviestream/tamilblasters-indexer/monitoring"
	"github.com/moviestream/tamilblasters-indexer/requester"
	"github.com/moviestream/tamilblasters-indexer/schema"
	"github.com/moviestream/tamilblasters-indexer/scraper"
	"github.com/moviestream/tamilblasters-indexer/storage"
)

var (
	flagHome      bool
	flagLanguage  string
	flagVideoType string
	flagPages     int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape movie metadata from the catalog into the local store",
	Long: `Scrape fetches catalog pages, extracts movie releases with their
quality variants and info hashes, and stores each release once.

Examples:
  tamilblasters-indexer scrape --home
  tamilblasters-indexer scrape -l tamil -t hdrip -p 3`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().BoolVar(&flagHome, "home", false, "Scrape the homepage instead of a listing")
	scrapeCmd.Flags().StringVarP(&flagLanguage, "language", "l", "tamil", "Catalog language to scrape")
	scrapeCmd.Flags().StringVarP(&flagVideoType, "video-type", "t", "hdrip", "Catalog video type to scrape")
	scrapeCmd.Flags().IntVarP(&flagPages, "pages", "p", 1, "Number of listing pages to scrape")
}

func runScrape(cmd *cobra.Command, _ []string) error {
	logging.InitLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagPages < 1 {
		return fmt.Errorf("pages must be >= 1, got %d", flagPages)
	}
	language := strings.ToLower(flagLanguage)
	if !flagHome && schema.GetLanguageFromString(language) == nil {
		known := make([]string, 0, len(schema.LanguageList))
		for _, l := range schema.LanguageList {
			known = append(known, l.String())
		}
		return fmt.Errorf("unknown language %q, expected one of: %s", flagLanguage, strings.Join(known, ", "))
	}

	metrics := monitoring.NewMetrics()
	metrics.Register()
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				logging.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	var fs *requester.FlareSolverr
	if cfg.FlareSolverr.URL != "" {
		fs = requester.NewFlareSolverr(cfg.FlareSolverr.URL, cfg.FlareSolverr.TimeoutMilli)
	}
	redis := cache.NewRedis(cfg.Redis.Addr)
	req := requester.NewRequester(fs, redis, cfg.FetchTimeout(), metrics)

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	s := scraper.New(cfg, req, store, metrics)
	return s.Run(cmd.Context(), scraper.Options{
		Home:      flagHome,
		Language:  language,
		VideoType: strings.ToLower(flagVideoType),
		Pages:     flagPages,
	})
}
