// Package config loads typed configuration from environment variables.
//
// Struct fields are bound with github.com/caarlos0/env/v11 tags. Optional
// .env files are read with github.com/joho/godotenv before parsing; values
// already present in the process environment win. Each configuration type is
// parsed once and cached for the life of the process.
//
//	type ServerConfig struct {
//		Addr     string `env:"HTTP_ADDR" envDefault:":8080"`
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Tests that change the environment between loads call ResetCache.
package config
