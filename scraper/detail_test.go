package scraper

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

const hash40 = "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2"
const hash32 = "ffeeddccbbaa99887766554433221100"

func detailFixture(magnetHref, poster, datetime string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><body><article>")
	if poster != "" {
		fmt.Fprintf(&b, `<img src="data:image/gif;base64,placeholder" data-src=%q>`, poster)
	}
	if datetime != "" {
		fmt.Fprintf(&b, `<time datetime=%q>yesterday</time>`, datetime)
	}
	if magnetHref != "" {
		fmt.Fprintf(&b, `<a class="magnet-plugin" href=%q>Magnet</a>`, magnetHref)
	}
	b.WriteString("</article></body></html>")
	return b.String()
}

func TestExtractDetail(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		want     Detail
		wantErr  error
	}{
		{
			name: "full page with 40 char hash",
			html: detailFixture(
				"magnet:?xt=urn:btih:"+hash40+"&dn=Vikram&tr=udp%3A%2F%2Ftracker.example",
				"https://static.example/vikram.jpg",
				"2022-06-03T10:15:00Z",
			),
			want: Detail{
				InfoHash:  hash40,
				Poster:    "https://static.example/vikram.jpg",
				CreatedAt: "2022-06-03T10:15:00Z",
			},
		},
		{
			name: "32 char hash",
			html: detailFixture(
				"magnet:?xt=urn:btih:"+hash32+"&dn=Old",
				"https://static.example/old.jpg",
				"2019-01-01T00:00:00Z",
			),
			want: Detail{
				InfoHash:  hash32,
				Poster:    "https://static.example/old.jpg",
				CreatedAt: "2019-01-01T00:00:00Z",
			},
		},
		{
			name:    "no magnet marker",
			html:    detailFixture("", "https://static.example/p.jpg", "2022-06-03T10:15:00Z"),
			wantErr: ErrMagnetNotFound,
		},
		{
			name:    "marker present but uri malformed",
			html:    detailFixture("magnet:?xt=urn:btih:short&x=1", "https://static.example/p.jpg", "2022-06-03T10:15:00Z"),
			wantErr: ErrMalformedMagnet,
		},
		{
			name:    "marker present but not a magnet uri",
			html:    detailFixture("https://shortener.example/redirect", "", ""),
			wantErr: ErrMalformedMagnet,
		},
		{
			name: "poster and timestamp absent",
			html: detailFixture("magnet:?xt=urn:btih:"+hash40+"&dn=Bare", "", ""),
			want: Detail{InfoHash: hash40},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractDetail(docFromString(t, tt.html))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractDetail() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractDetail() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
