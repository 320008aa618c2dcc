package utils

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

var commonTLDs = []string{
	".com",
	".net",
	".org",
	".in",
	".io",
	".me",
	".cc",
	".la",
	".to",
	".cloud",
	".dad",
	".moi",
	".life",
	".party",
	".win",
	".red",
	".pro",
}

var commonSubdomains = []string{
	"", // no prefix
	"www.",
	"1",
	"www.1",
}

var commonWebsiteSLDs = []string{
	"tamilblasters",
	"tamilmv",
	"tamilrockers",
	"moviesda",
	"isaimini",
	"kuttymovies",
}

var websitePatterns = []string{
	`\[\s*%s\s*\]\s*-?\s*`,
	`\(\s*%s\s*\)\s*-?\s*`,
	`%s\s*-\s*`,
	`%s`,
}

var regexesOnce sync.Once
var regexes []*regexp.Regexp

func getRegexes() []*regexp.Regexp {
	regexesOnce.Do(func() {
		var sites []string
		for _, prefix := range commonSubdomains {
			for _, name := range commonWebsiteSLDs {
				for _, tld := range commonTLDs {
					sites = append(sites, regexp.QuoteMeta(prefix+name+tld))
				}
			}
		}
		websites := fmt.Sprintf("(?i)(%s)", strings.Join(sites, "|"))

		for _, pattern := range websitePatterns {
			regexes = append(regexes, regexp.MustCompile(fmt.Sprintf(pattern, websites)))
		}
	})
	return regexes
}

// RemoveKnownWebsites removes known mirror-site decorations from a
// title, like "[ www.TamilBlasters.dad ] - " or "(1tamilmv.win)".
// Catalog titles keep whatever the forum published; this is used only
// when normalizing titles for search ranking.
func RemoveKnownWebsites(title string) string {
	regexes := getRegexes()
	for _, re := range regexes {
		title = re.ReplaceAllString(title, "")
	}
	title = strings.TrimSpace(title)
	return title
}
