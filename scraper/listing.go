package scraper

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/moviestream/tamilblasters-indexer/logging"
)

// titleRegex splits a post title at the release-year boundary:
// group 1 is everything up to and including "(YYYY)", group 2 the
// quality suffix.
var titleRegex = regexp.MustCompile(`^(.+\(\d{4}\))(.+)`)

// Entry is one candidate release from a listing page. The listing
// format carries a single quality variant per post.
type Entry struct {
	Title      string
	Catalog    string
	Quality    string
	DetailLink string
}

// ExtractListing pulls candidate entries from a forum listing page.
// Rows whose title does not carry a "(YYYY)" year are logged and
// skipped; a page without a listing root is an error and aborts the
// page.
func ExtractListing(doc *goquery.Document, catalog string) ([]Entry, error) {
	root := doc.Find("ol").First()
	if root.Length() == 0 {
		return nil, errors.New("listing root not found")
	}

	var entries []Entry
	root.Find("li[data-rowid]").Each(func(_ int, row *goquery.Selection) {
		anchor := row.Find("a").First()
		text := strings.TrimSpace(anchor.Text())

		matches := titleRegex.FindStringSubmatch(text)
		if matches == nil {
			logging.Error().Str("text", text).Msg("not able to parse listing entry")
			return
		}

		link, _ := anchor.Attr("href")
		entries = append(entries, Entry{
			Title:      strings.TrimSpace(matches[1]),
			Catalog:    catalog,
			Quality:    strings.Trim(matches[2], "[] "),
			DetailLink: link,
		})
	})

	return entries, nil
}
