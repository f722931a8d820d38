package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language is detected.
const DefaultLanguage = "en"

// maxAcceptLanguageLength bounds the header before parsing.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage negotiates the Accept-Language header against the
// supported languages and returns the supported code as written, or
// defaultLang when nothing matches.
func ParseAcceptLanguage(header string, supported []string, defaultLang string) string {
	if header == "" || len(supported) == 0 {
		return defaultLang
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return defaultLang
	}

	tags := make([]language.Tag, 0, len(supported))
	codes := make([]string, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, strings.ToLower(code))
	}
	if len(tags) == 0 {
		return defaultLang
	}

	_, idx, conf := language.NewMatcher(tags).Match(prefs...)
	if conf == language.No {
		return defaultLang
	}
	return codes[idx]
}
