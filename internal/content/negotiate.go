package content

import (
	"golang.org/x/text/language"
)

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Sinhala,
	language.Tamil,
})

// Negotiate picks the best supported language for an Accept-Language header.
// It falls back to English when nothing matches.
func Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return English
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return English
	}
	return languages[index]
}
