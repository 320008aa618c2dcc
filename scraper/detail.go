package scraper

import (
	"errors"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrMagnetNotFound means the detail page carries no magnet link
	// marker; the variant is skipped.
	ErrMagnetNotFound = errors.New("magnet link not found")
	// ErrMalformedMagnet means a magnet marker exists but its URI does
	// not carry a well-formed info hash.
	ErrMalformedMagnet = errors.New("malformed magnet link")
)

var infoHashRegex = regexp.MustCompile(`urn:btih:(.{32,40})&`)

// Detail is one variant's contribution to a movie record. Poster and
// CreatedAt may be empty when the page lacks them; completeness is
// enforced at assembly.
type Detail struct {
	InfoHash  string
	Poster    string
	CreatedAt string
}

// ExtractDetail pulls the info hash, poster and publish timestamp from
// a detail page.
func ExtractDetail(doc *goquery.Document) (Detail, error) {
	magnet := doc.Find("a.magnet-plugin").First()
	if magnet.Length() == 0 {
		return Detail{}, ErrMagnetNotFound
	}

	href := magnet.AttrOr("href", "")
	matches := infoHashRegex.FindStringSubmatch(href)
	if matches == nil {
		return Detail{}, ErrMalformedMagnet
	}

	return Detail{
		InfoHash:  matches[1],
		Poster:    doc.Find("img[data-src]").First().AttrOr("data-src", ""),
		CreatedAt: doc.Find("time").First().AttrOr("datetime", ""),
	}, nil
}
