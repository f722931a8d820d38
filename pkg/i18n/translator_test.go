package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikit/pkg/i18n"
)

func newTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()
	adapter := &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {
			"errors": map[string]any{
				"not_found": "%{resource} was not found",
				"presence":  "%{param} is required",
			},
			"greeting": "Hello",
		},
		"es": {
			"errors": map[string]any{
				"not_found": "%{resource} no encontrado",
			},
		},
	}}
	tr, err := i18n.NewTranslator(context.Background(), adapter, opts...)
	require.NoError(t, err)
	return tr
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	t.Run("nil adapter", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewTranslator(context.Background(), nil)
		assert.ErrorIs(t, err, i18n.ErrNilAdapter)
	})

	t.Run("supported languages sorted", func(t *testing.T) {
		t.Parallel()
		tr := newTranslator(t)
		assert.Equal(t, []string{"en", "es"}, tr.SupportedLanguages())
		assert.Equal(t, "en", tr.DefaultLanguage())
	})
}

func TestTranslator_Translate(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	t.Run("scoped key with values", func(t *testing.T) {
		t.Parallel()
		got := tr.Translate(context.Background(), "not_found", i18n.TranslateOptions{
			Scope:  "errors",
			Values: map[string]any{"resource": "User"},
		})
		assert.Equal(t, "User was not found", got)
	})

	t.Run("language from context", func(t *testing.T) {
		t.Parallel()
		ctx := i18n.WithLocale(context.Background(), "es")
		got := tr.Translate(ctx, "not_found", i18n.TranslateOptions{
			Scope:  "errors",
			Values: map[string]any{"resource": "Usuario"},
		})
		assert.Equal(t, "Usuario no encontrado", got)
	})

	t.Run("falls back to default language", func(t *testing.T) {
		t.Parallel()
		ctx := i18n.WithLocale(context.Background(), "es-MX")
		got := tr.Translate(ctx, "presence", i18n.TranslateOptions{
			Scope:  "errors",
			Values: map[string]any{"param": "email"},
		})
		assert.Equal(t, "email is required", got)
	})

	t.Run("missing key uses interpolated default", func(t *testing.T) {
		t.Parallel()
		got := tr.Translate(context.Background(), "conflict", i18n.TranslateOptions{
			Scope:   "errors",
			Default: "conflict on %{field}",
			Values:  map[string]any{"field": 42},
		})
		assert.Equal(t, "conflict on 42", got)
	})

	t.Run("missing key without default returns full key", func(t *testing.T) {
		t.Parallel()
		got := tr.Translate(context.Background(), "conflict", i18n.TranslateOptions{Scope: "errors"})
		assert.Equal(t, "errors.conflict", got)
	})

	t.Run("branch is not a translation", func(t *testing.T) {
		t.Parallel()
		assert.False(t, tr.Has("en", "errors"))
		assert.True(t, tr.Has("en", "greeting"))
	})
}

func TestTranslator_FallbackToKeyDisabled(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t, i18n.WithFallbackToKey(false))
	assert.Empty(t, tr.T("en", "missing.key", nil))
	assert.Empty(t, tr.Translate(context.Background(), "missing", i18n.TranslateOptions{Scope: "errors"}))
}

func TestInterpolate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a 1 b", i18n.Interpolate("a %{x} b", map[string]any{"x": 1}))
	assert.Equal(t, "keep %{y}", i18n.Interpolate("keep %{y}", map[string]any{"x": 1}))
	assert.Equal(t, "plain", i18n.Interpolate("plain", nil))
}
