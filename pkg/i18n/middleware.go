package i18n

import "net/http"

const langParam = "lang"

// LangExtractor picks the request language, or "" when it cannot tell.
type LangExtractor func(r *http.Request) string

// DefaultLangExtractor checks the "lang" query parameter, then the "lang"
// cookie, then negotiates the Accept-Language header against supported.
func DefaultLangExtractor(supported []string, defaultLang string) LangExtractor {
	return func(r *http.Request) string {
		if lang := r.URL.Query().Get(langParam); lang != "" {
			return lang
		}
		if c, err := r.Cookie(langParam); err == nil && c.Value != "" {
			return c.Value
		}
		return ParseAcceptLanguage(r.Header.Get("Accept-Language"), supported, defaultLang)
	}
}

// Middleware stores the language chosen by extr in the request context.
// A nil extractor negotiates against the translator's languages.
func Middleware(t *Translator, extr LangExtractor) func(http.Handler) http.Handler {
	defaultLang := DefaultLanguage
	if t != nil {
		defaultLang = t.DefaultLanguage()
	}
	if extr == nil {
		var supported []string
		if t != nil {
			supported = t.SupportedLanguages()
		}
		extr = DefaultLangExtractor(supported, defaultLang)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extr(r)
			if lang == "" {
				lang = defaultLang
			}
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang)))
		})
	}
}
