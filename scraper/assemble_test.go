package scraper

import (
	"errors"
	"testing"
)

func TestAssemblerCompleteRecord(t *testing.T) {
	a := NewAssembler("Vikram (2022)", "tamil_hdrip")
	a.Add("1080p HD", Detail{
		InfoHash:  hash40,
		Poster:    "https://static.example/vikram.jpg",
		CreatedAt: "2022-06-03T10:15:00Z",
	})

	movie, err := a.Movie()
	if err != nil {
		t.Fatalf("Movie() error = %v", err)
	}
	if movie.Name != "Vikram (2022)" || movie.Catalog != "tamil_hdrip" {
		t.Errorf("identity = %q/%q", movie.Name, movie.Catalog)
	}
	if movie.VideoQualities["1080p HD"] != hash40 {
		t.Errorf("variants = %v", movie.VideoQualities)
	}
}

func TestAssemblerMissingTimestampBlocksRecord(t *testing.T) {
	// completeness is all-or-nothing: poster and variants alone are
	// not enough
	a := NewAssembler("Vikram (2022)", "tamil_hdrip")
	a.Add("1080p HD", Detail{
		InfoHash: hash40,
		Poster:   "https://static.example/vikram.jpg",
	})

	if _, err := a.Movie(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Movie() error = %v, want ErrIncomplete", err)
	}
}

func TestAssemblerNoVisits(t *testing.T) {
	a := NewAssembler("Vikram (2022)", "tamil_hdrip")
	if _, err := a.Movie(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Movie() error = %v, want ErrIncomplete", err)
	}
}

func TestAssemblerLastVisitWins(t *testing.T) {
	a := NewAssembler("Vikram (2022)", "any_any")
	a.Add("1080p HD", Detail{
		InfoHash:  hash40,
		Poster:    "https://static.example/first.jpg",
		CreatedAt: "2022-06-03T10:15:00Z",
	})
	a.Add("720p HD", Detail{
		InfoHash:  hash32,
		Poster:    "https://static.example/second.jpg",
		CreatedAt: "2022-06-04T08:00:00Z",
	})

	movie, err := a.Movie()
	if err != nil {
		t.Fatalf("Movie() error = %v", err)
	}
	if len(movie.VideoQualities) != 2 {
		t.Errorf("variants = %v, want 2", movie.VideoQualities)
	}
	if movie.Poster != "https://static.example/second.jpg" {
		t.Errorf("Poster = %q, want the later visit's", movie.Poster)
	}
	if movie.CreatedAt != "2022-06-04T08:00:00Z" {
		t.Errorf("CreatedAt = %q, want the later visit's", movie.CreatedAt)
	}
}

func TestAssemblerVisitWithoutPosterKeepsEarlier(t *testing.T) {
	a := NewAssembler("Vikram (2022)", "any_any")
	a.Add("1080p HD", Detail{
		InfoHash:  hash40,
		Poster:    "https://static.example/first.jpg",
		CreatedAt: "2022-06-03T10:15:00Z",
	})
	// a later visit that supplies nothing extra only contributes its
	// variant
	a.Add("720p HD", Detail{InfoHash: hash32})

	movie, err := a.Movie()
	if err != nil {
		t.Fatalf("Movie() error = %v", err)
	}
	if movie.Poster != "https://static.example/first.jpg" {
		t.Errorf("Poster = %q, want the earlier visit's", movie.Poster)
	}
	if movie.CreatedAt != "2022-06-03T10:15:00Z" {
		t.Errorf("CreatedAt = %q, want the earlier visit's", movie.CreatedAt)
	}
}
