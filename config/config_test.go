package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := cfg.FetchTimeout(); got != 30*time.Second {
		t.Errorf("FetchTimeout() = %v, want 30s", got)
	}
	if got := cfg.DetailTimeout(); got != 45*time.Second {
		t.Errorf("DetailTimeout() = %v, want 45s", got)
	}
}

func TestCatalogURL(t *testing.T) {
	cfg := Default()
	tests := []struct {
		name      string
		language  string
		videoType string
		want      string
		wantOK    bool
	}{
		{
			name:      "known pair",
			language:  "tamil",
			videoType: "hdrip",
			want:      "https://tamilblasters.cloud/index.php?/forums/forum/7-tamil-new-movies-hdrips-bdrips-dvdrips-hdtv",
			wantOK:    true,
		},
		{
			name:      "unknown video type",
			language:  "tamil",
			videoType: "bluray",
			wantOK:    false,
		},
		{
			name:      "unknown language",
			language:  "klingon",
			videoType: "hdrip",
			wantOK:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cfg.CatalogURL(tt.language, tt.videoType)
			if ok != tt.wantOK {
				t.Fatalf("CatalogURL() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("CatalogURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
site_url = "https://www.1tamilblasters.moi"

[catalogs.malayalam]
hdrip = "19-malayalam-new-movies-hdrips-bdrips-dvdrips-hdtv"

[fetch]
timeout = "1m"
detail_timeout = "90s"
workers = 8
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SiteURL != "https://www.1tamilblasters.moi" {
		t.Errorf("SiteURL = %q", cfg.SiteURL)
	}
	if cfg.Fetch.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Fetch.Workers)
	}
	if cfg.FetchTimeout() != time.Minute {
		t.Errorf("FetchTimeout() = %v, want 1m", cfg.FetchTimeout())
	}
	if _, ok := cfg.CatalogURL("malayalam", "hdrip"); !ok {
		t.Error("expected malayalam catalog from file")
	}
	// defaults that the file does not touch stay in place
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SiteURL != defaultSiteURL {
		t.Errorf("SiteURL = %q, want default", cfg.SiteURL)
	}
}

func TestValidateRejectsBadDuration(t *testing.T) {
	cfg := Default()
	cfg.Fetch.Timeout = "soon"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for bad duration")
	}
}
