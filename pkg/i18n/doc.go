// Package i18n provides the message catalog used to localize API error
// descriptions and any other user-facing strings.
//
// Translations are loaded once from a TranslationAdapter (an in-memory map,
// a single file, or every file of a directory or fs.FS) and parsed from YAML
// or JSON. They are keyed by language, then by dot-separated key:
//
//	en:
//	  errors:
//	    not_found: "%{resource} was not found"
//	    presence: "%{param} is required"
//
// # Usage
//
//	adapter := i18n.NewDirectoryAdapter(i18n.NewYAMLParser(), "./locales")
//	translator, err := i18n.NewTranslator(ctx, adapter, i18n.WithDefaultLanguage("en"))
//	if err != nil {
//		return err
//	}
//
//	msg := translator.Translate(ctx, "not_found", i18n.TranslateOptions{
//		Scope:   "errors",
//		Default: "An unknown error has occurred.",
//		Values:  map[string]any{"resource": "User"},
//	})
//
// Translate resolves the language from the context (see Middleware and
// WithLocale), falls back to the default language, then to the supplied
// default. Placeholders of the form %{name} are replaced from Values in both
// the translation and the default.
//
// # HTTP Middleware
//
// Middleware picks the request language from a "lang" query parameter, a
// "lang" cookie, or the Accept-Language header, negotiated against the
// languages the translator knows, and stores it in the request context.
package i18n
