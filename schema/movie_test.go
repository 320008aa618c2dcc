package schema

import "testing"

func TestMovieComplete(t *testing.T) {
	full := Movie{
		Name:           "Vikram (2022)",
		Catalog:        "tamil_hdrip",
		VideoQualities: map[string]string{"1080p HD": "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2"},
		Poster:         "https://static.example/vikram.jpg",
		CreatedAt:      "2022-06-03T10:15:00Z",
	}

	tests := []struct {
		name   string
		mutate func(*Movie)
		want   bool
	}{
		{name: "all fields present", mutate: func(*Movie) {}, want: true},
		{name: "missing name", mutate: func(m *Movie) { m.Name = "" }, want: false},
		{name: "no variants", mutate: func(m *Movie) { m.VideoQualities = nil }, want: false},
		{name: "missing poster", mutate: func(m *Movie) { m.Poster = "" }, want: false},
		{name: "missing timestamp", mutate: func(m *Movie) { m.CreatedAt = "" }, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := full
			m.VideoQualities = map[string]string{}
			for k, v := range full.VideoQualities {
				m.VideoQualities[k] = v
			}
			tt.mutate(&m)
			if got := m.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetLanguageFromString(t *testing.T) {
	if l := GetLanguageFromString("Tamil"); l == nil || *l != LanguageTamil {
		t.Errorf("GetLanguageFromString(Tamil) = %v", l)
	}
	if l := GetLanguageFromString("klingon"); l != nil {
		t.Errorf("GetLanguageFromString(klingon) = %v, want nil", l)
	}
	if got := LanguageTamil.String(); got != "tamil" {
		t.Errorf("String() = %q, want tamil", got)
	}
}
