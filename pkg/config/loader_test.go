package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikit/pkg/config"
)

type defaultsConfig struct {
	Addr    string `env:"APIKIT_TEST_ADDR" envDefault:":8080"`
	Workers int    `env:"APIKIT_TEST_WORKERS" envDefault:"4"`
	Debug   bool   `env:"APIKIT_TEST_DEBUG" envDefault:"false"`
}

type cachedConfig struct {
	Value string `env:"APIKIT_TEST_CACHED" envDefault:"initial"`
}

type requiredConfig struct {
	Secret string `env:"APIKIT_TEST_REQUIRED,required"`
}

type fileConfig struct {
	Locale string   `env:"APIKIT_TEST_LOCALE"`
	Langs  []string `env:"APIKIT_TEST_LANGS" envSeparator:","`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.ResetCache()
		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 4, cfg.Workers)
		assert.False(t, cfg.Debug)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("APIKIT_TEST_ADDR", ":9090")
		t.Setenv("APIKIT_TEST_DEBUG", "true")
		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":9090", cfg.Addr)
		assert.True(t, cfg.Debug)
	})

	t.Run("cached per type", func(t *testing.T) {
		config.ResetCache()
		var first cachedConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("APIKIT_TEST_CACHED", "changed")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "initial", second.Value)

		config.ResetCache()
		var third cachedConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, "changed", third.Value)
	})

	t.Run("missing required", func(t *testing.T) {
		config.ResetCache()
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *defaultsConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("APIKIT_TEST_LOCALE=es\nAPIKIT_TEST_LANGS=en,es\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("APIKIT_TEST_LOCALE")
		os.Unsetenv("APIKIT_TEST_LANGS")
	})

	require.NoError(t, config.LoadEnv(path))
	config.ResetCache()

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "es", cfg.Locale)
	assert.Equal(t, []string{"en", "es"}, cfg.Langs)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")), config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv(filepath.Join(t.TempDir(), "missing.env")) })
}
