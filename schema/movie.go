package schema

// CatalogAny is the catalog tag assigned to releases discovered on the
// homepage, where posts aggregate every language and video type.
const CatalogAny = "any_any"

// Movie is one distinct release in the catalog, possibly available in
// several quality variants. VideoQualities maps a quality label
// (e.g. "1080p HD", "HDRip") to the info hash of that variant.
type Movie struct {
	Name           string            `json:"name"`
	Catalog        string            `json:"catalog"`
	VideoQualities map[string]string `json:"video_qualities"`
	Poster         string            `json:"poster"`
	CreatedAt      string            `json:"created_at"`
}

// Complete reports whether the movie carries the minimum field set
// required for persistence. Partial records are never saved.
func (m Movie) Complete() bool {
	return m.Name != "" && len(m.VideoQualities) > 0 && m.Poster != "" && m.CreatedAt != ""
}
