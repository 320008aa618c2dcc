// Package scraper turns the forum's listing, homepage and detail pages
// into validated movie records and drives them to storage.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/moviestream/tamilblasters-indexer/config"
	"github.com/moviestream/tamilblasters-indexer/logging"
	"github.com/moviestream/tamilblasters-indexer/monitoring"
	"github.com/moviestream/tamilblasters-indexer/schema"
)

// Fetcher retrieves a raw document body. The production implementation
// is requester.Requester; tests substitute fixture documents.
// ExpireDocument drops any cached body for url so the next GetDocument
// goes back to the site.
type Fetcher interface {
	GetDocument(ctx context.Context, url string) (io.ReadCloser, error)
	ExpireDocument(ctx context.Context, url string) error
}

// Sink persists completed movie records. Save must be idempotent per
// (catalog, name) and merge variant supersets.
type Sink interface {
	Init(ctx context.Context) error
	Save(ctx context.Context, movie schema.Movie) error
}

// Options selects what one run scrapes.
type Options struct {
	Home      bool
	Language  string
	VideoType string
	Pages     int
}

// Scraper orchestrates pagination, extraction, assembly and
// persistence for one run.
type Scraper struct {
	cfg     *config.Config
	fetcher Fetcher
	sink    Sink
	metrics *monitoring.Metrics
}

func New(cfg *config.Config, fetcher Fetcher, sink Sink, metrics *monitoring.Metrics) *Scraper {
	return &Scraper{cfg: cfg, fetcher: fetcher, sink: sink, metrics: metrics}
}

// Run executes one scrape. Only a top-level fetch or a missing page
// root aborts the run; per-entry and per-variant failures are logged
// and reduce yield.
func (s *Scraper) Run(ctx context.Context, opts Options) error {
	if err := s.sink.Init(ctx); err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	if opts.Home {
		return s.scrapeHomepage(ctx)
	}

	base, ok := s.cfg.CatalogURL(opts.Language, opts.VideoType)
	if !ok {
		return fmt.Errorf("no catalog for language %q and video type %q", opts.Language, opts.VideoType)
	}

	catalog := fmt.Sprintf("%s_%s", opts.Language, opts.VideoType)
	for page := 1; page <= opts.Pages; page++ {
		pageURL := fmt.Sprintf("%s/page/%d/", base, page)
		logging.Info().Int("page", page).Str("catalog", catalog).Msg("scraping page")
		if err := s.scrapePage(ctx, pageURL, catalog); err != nil {
			s.metrics.ScrapeErrors.WithLabelValues(catalog).Inc()
			return err
		}
	}
	return nil
}

func (s *Scraper) scrapePage(ctx context.Context, url, catalog string) error {
	start := time.Now()
	defer func() {
		s.metrics.PageDuration.WithLabelValues(catalog).Observe(time.Since(start).Seconds())
	}()

	doc, err := s.getDocument(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch listing page %s: %w", url, err)
	}

	entries, err := ExtractListing(doc, catalog)
	if err != nil {
		// the cached body is not a listing page, likely a challenge;
		// drop it so the next run refetches instead of failing again
		if expireErr := s.fetcher.ExpireDocument(ctx, url); expireErr != nil {
			logging.Debug().Err(expireErr).Str("url", url).Msg("failed to expire cached document")
		}
		return fmt.Errorf("extract listing page %s: %w", url, err)
	}

	sem := make(chan struct{}, s.cfg.Fetch.Workers)
	var wg sync.WaitGroup
	for _, entry := range entries {
		wg.Add(1)
		sem <- struct{}{}
		go func(entry Entry) {
			defer wg.Done()
			defer func() { <-sem }()
			s.processEntry(ctx, entry)
		}(entry)
	}
	wg.Wait()

	return nil
}

func (s *Scraper) scrapeHomepage(ctx context.Context) error {
	catalog := schema.CatalogAny
	start := time.Now()
	defer func() {
		s.metrics.PageDuration.WithLabelValues(catalog).Observe(time.Since(start).Seconds())
	}()

	doc, err := s.getDocument(ctx, s.cfg.SiteURL)
	if err != nil {
		s.metrics.ScrapeErrors.WithLabelValues(catalog).Inc()
		return fmt.Errorf("fetch homepage: %w", err)
	}

	groups, err := ExtractHomepage(doc)
	if err != nil {
		if expireErr := s.fetcher.ExpireDocument(ctx, s.cfg.SiteURL); expireErr != nil {
			logging.Debug().Err(expireErr).Str("url", s.cfg.SiteURL).Msg("failed to expire cached document")
		}
		s.metrics.ScrapeErrors.WithLabelValues(catalog).Inc()
		return fmt.Errorf("extract homepage: %w", err)
	}

	sem := make(chan struct{}, s.cfg.Fetch.Workers)
	var wg sync.WaitGroup
	for _, group := range groups {
		wg.Add(1)
		sem <- struct{}{}
		go func(group EntryGroup) {
			defer wg.Done()
			defer func() { <-sem }()
			s.processGroup(ctx, group)
		}(group)
	}
	wg.Wait()

	return nil
}

// processEntry handles one listing entry: a single variant visit, then
// assembly and persistence.
func (s *Scraper) processEntry(ctx context.Context, entry Entry) {
	logging.Info().Str("title", entry.Title).Msg("getting movie data")

	assembler := NewAssembler(entry.Title, entry.Catalog)
	detail, err := s.visitDetail(ctx, entry.DetailLink)
	if err != nil {
		s.skipVariant(entry.Catalog, entry.DetailLink, err)
		return
	}
	assembler.Add(entry.Quality, detail)

	s.finish(ctx, assembler, entry.Catalog, entry.Title)
}

// processGroup handles one homepage group: every variant is visited in
// turn and failures only cost that variant.
func (s *Scraper) processGroup(ctx context.Context, group EntryGroup) {
	logging.Info().Str("title", group.Title).Msg("getting movie data")

	assembler := NewAssembler(group.Title, group.Catalog)
	for _, variant := range group.Variants {
		detail, err := s.visitDetail(ctx, variant.DetailLink)
		if err != nil {
			s.skipVariant(group.Catalog, variant.DetailLink, err)
			continue
		}
		assembler.Add(variant.Quality, detail)
	}

	s.finish(ctx, assembler, group.Catalog, group.Title)
}

func (s *Scraper) visitDetail(ctx context.Context, url string) (Detail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.DetailTimeout())
	defer cancel()

	doc, err := s.getDocument(ctx, url)
	if err != nil {
		return Detail{}, err
	}
	return ExtractDetail(doc)
}

func (s *Scraper) getDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := s.fetcher.GetDocument(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return goquery.NewDocumentFromReader(body)
}

func (s *Scraper) skipVariant(catalog, url string, err error) {
	switch {
	case errors.Is(err, ErrMagnetNotFound):
		logging.Warn().Str("url", url).Msg("skipping, magnet link not found")
		s.metrics.EntriesSkipped.WithLabelValues(catalog, "magnet_not_found").Inc()
	case errors.Is(err, ErrMalformedMagnet):
		logging.Error().Str("url", url).Msg("skipping, malformed magnet link")
		s.metrics.EntriesSkipped.WithLabelValues(catalog, "malformed_magnet").Inc()
	default:
		logging.Error().Err(err).Str("url", url).Msg("skipping, detail page fetch failed")
		s.metrics.EntriesSkipped.WithLabelValues(catalog, "fetch_failed").Inc()
	}
}

// finish gates the assembled record on completeness and persists it.
// The cause of an incomplete record was already logged when its visit
// was skipped.
func (s *Scraper) finish(ctx context.Context, assembler *Assembler, catalog, title string) {
	movie, err := assembler.Movie()
	if err != nil {
		s.metrics.EntriesSkipped.WithLabelValues(catalog, "incomplete").Inc()
		return
	}

	if err := s.sink.Save(ctx, movie); err != nil {
		logging.Error().Err(err).Str("title", title).Msg("failed to save movie")
		return
	}
	s.metrics.MoviesIndexed.WithLabelValues(catalog).Inc()
}
