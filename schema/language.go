package schema

import "strings"

// Language is a catalog language section of the forum.
type Language string

const (
	LanguageTamil     Language = "tamil"
	LanguageTelugu    Language = "telugu"
	LanguageHindi     Language = "hindi"
	LanguageMalayalam Language = "malayalam"
	LanguageKannada   Language = "kannada"
	LanguageEnglish   Language = "english"
)

var LanguageList = []Language{
	LanguageTamil,
	LanguageTelugu,
	LanguageHindi,
	LanguageMalayalam,
	LanguageKannada,
	LanguageEnglish,
}

func (l Language) String() string {
	return string(l)
}

// GetLanguageFromString returns the matching catalog language, ignoring
// case, or nil when the language is not a known forum section.
func GetLanguageFromString(s string) *Language {
	for _, l := range LanguageList {
		if strings.EqualFold(string(l), s) {
			return &l
		}
	}
	return nil
}
