package scraper

import (
	"errors"

	"github.com/moviestream/tamilblasters-indexer/schema"
)

// ErrIncomplete means the assembled record is missing a required field
// and must not be persisted.
var ErrIncomplete = errors.New("incomplete movie record")

// Assembler accumulates variant visits for one title and gates the
// final record on completeness.
type Assembler struct {
	movie schema.Movie
}

func NewAssembler(title, catalog string) *Assembler {
	return &Assembler{movie: schema.Movie{
		Name:           title,
		Catalog:        catalog,
		VideoQualities: map[string]string{},
	}}
}

// Add records one successful detail visit. The last visit that supplies
// a poster or timestamp wins; conflicting values across variants are
// not reconciled.
func (a *Assembler) Add(quality string, d Detail) {
	a.movie.VideoQualities[quality] = d.InfoHash
	if d.Poster != "" {
		a.movie.Poster = d.Poster
	}
	if d.CreatedAt != "" {
		a.movie.CreatedAt = d.CreatedAt
	}
}

// Movie returns the assembled record, or ErrIncomplete when any
// required field is still missing after all visits.
func (a *Assembler) Movie() (schema.Movie, error) {
	if !a.movie.Complete() {
		return schema.Movie{}, ErrIncomplete
	}
	return a.movie, nil
}
