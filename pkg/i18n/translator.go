package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// placeholderRegex matches %{name} placeholders.
var placeholderRegex = regexp.MustCompile(`%\{([A-Za-z0-9_.\-]+)\}`)

// TranslateOptions controls a single Translate call.
type TranslateOptions struct {
	// Scope is prepended to the key with a dot.
	Scope string
	// Default is used when no translation exists in any language.
	Default string
	// Values fill %{name} placeholders. Missing names are left as is.
	Values map[string]any
}

// Translator resolves dot-separated keys against translations loaded from a
// TranslationAdapter. It is safe for concurrent use.
type Translator struct {
	mu            sync.RWMutex
	translations  map[string]map[string]any
	adapter       TranslationAdapter
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger
}

// NewTranslator loads translations from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		adapter:       adapter,
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		opt(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload replaces the translations with a fresh load from the adapter.
func (t *Translator) Reload(ctx context.Context) error {
	loaded, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}

	translations := make(map[string]map[string]any, len(loaded))
	for lang, tr := range loaded {
		if lang == "" || tr == nil {
			return fmt.Errorf("%w: language %q", ErrInvalidStructure, lang)
		}
		translations[strings.ToLower(lang)] = tr
	}

	t.mu.Lock()
	t.translations = translations
	t.mu.Unlock()

	t.logger.DebugContext(ctx, "translations loaded", slog.Any("languages", t.SupportedLanguages()))
	return nil
}

// DefaultLanguage returns the fallback language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// Lookup returns the raw translation string for key in lang, falling back to
// the base language ("pt" for "pt-br") and then to the default language.
func (t *Translator) Lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, l := range t.candidates(lang) {
		if v, ok := dig(t.translations[l], key); ok {
			return v, true
		}
	}
	return "", false
}

// Has reports whether key resolves for lang.
func (t *Translator) Has(lang, key string) bool {
	_, ok := t.Lookup(lang, key)
	return ok
}

// T translates key for lang and interpolates values.
func (t *Translator) T(lang, key string, values map[string]any) string {
	if v, ok := t.Lookup(lang, key); ok {
		return Interpolate(v, values)
	}
	t.missing(context.Background(), lang, key)
	if t.fallbackToKey {
		return key
	}
	return ""
}

// Translate resolves Scope.key in the language stored in ctx. Missing keys
// resolve to the interpolated Default, or to the full key when no default is
// given and key fallback is enabled.
func (t *Translator) Translate(ctx context.Context, key string, opts TranslateOptions) string {
	full := key
	if opts.Scope != "" {
		full = opts.Scope + "." + key
	}

	lang := LocaleFromContext(ctx)
	if v, ok := t.Lookup(lang, full); ok {
		return Interpolate(v, opts.Values)
	}
	t.missing(ctx, lang, full)

	if opts.Default != "" {
		return Interpolate(opts.Default, opts.Values)
	}
	if t.fallbackToKey {
		return full
	}
	return ""
}

func (t *Translator) missing(ctx context.Context, lang, key string) {
	if t.logMissing {
		t.logger.DebugContext(ctx, "missing translation", slog.String("lang", lang), slog.String("key", key))
	}
}

func (t *Translator) candidates(lang string) []string {
	lang = strings.ToLower(lang)
	out := make([]string, 0, 3)
	if lang != "" {
		out = append(out, lang)
		if i := strings.IndexAny(lang, "-_"); i > 0 {
			out = append(out, lang[:i])
		}
	}
	if def := strings.ToLower(t.defaultLang); !slices.Contains(out, def) {
		out = append(out, def)
	}
	return out
}

// dig walks nested maps following a dot-separated key. Only string leaves
// count as translations.
func dig(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	if v, ok := m[key].(string); ok {
		return v, true
	}

	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		next, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, ok := next.(string)
			return s, ok
		}
		if current, ok = next.(map[string]any); !ok {
			return "", false
		}
	}
	return "", false
}

// Interpolate replaces %{name} placeholders with fmt.Sprint of the matching
// value. Unknown placeholders are kept.
func Interpolate(s string, values map[string]any) string {
	if len(values) == 0 || !strings.Contains(s, "%{") {
		return s
	}
	return placeholderRegex.ReplaceAllStringFunc(s, func(m string) string {
		name := m[2 : len(m)-1]
		if v, ok := values[name]; ok {
			return fmt.Sprint(v)
		}
		return m
	})
}
