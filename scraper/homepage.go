package scraper

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/moviestream/tamilblasters-indexer/logging"
	"github.com/moviestream/tamilblasters-indexer/schema"
)

var homepageTitleRegex = regexp.MustCompile(`^(.+\(\d{4}\))`)

// VariantLink pairs a quality label with the detail page that carries
// its magnet link.
type VariantLink struct {
	Quality    string
	DetailLink string
}

// EntryGroup aggregates the quality variants one homepage post lists
// under a single title.
type EntryGroup struct {
	Title    string
	Catalog  string
	Variants []VariantLink
}

// ExtractHomepage pulls release groups from the homepage widget. One
// paragraph is one title with several variant links; the last link of a
// paragraph is not a variant (trailer or info) and is dropped.
func ExtractHomepage(doc *goquery.Document) ([]EntryGroup, error) {
	block := doc.Find("div.ipsWidget_inner.ipsPad.ipsType_richText").First()
	if block.Length() == 0 {
		return nil, errors.New("homepage movie block not found")
	}

	paragraphs := block.Find("p")
	n := paragraphs.Length()

	var groups []EntryGroup
	// the first two and last two paragraphs are header/footer
	// boilerplate of the widget, never entries
	for idx := 2; idx < n-2; idx++ {
		p := paragraphs.Eq(idx)
		text := strings.TrimSpace(p.Text())

		matches := homepageTitleRegex.FindStringSubmatch(text)
		if matches == nil {
			logging.Error().Str("text", text).Msg("not able to parse homepage entry")
			continue
		}

		group := EntryGroup{
			Title:   strings.TrimSpace(matches[1]),
			Catalog: schema.CatalogAny,
		}

		anchors := p.Find("a")
		anchors.Each(func(i int, a *goquery.Selection) {
			if i == anchors.Length()-1 {
				return
			}
			href, _ := a.Attr("href")
			group.Variants = append(group.Variants, VariantLink{
				Quality:    strings.Trim(a.Text(), "[] "),
				DetailLink: href,
			})
		})

		groups = append(groups, group)
	}

	return groups, nil
}
