package main

import "github.com/dmitrymomot/apikit/pkg/httpserver"

type appConfig struct {
	httpserver.Config

	Name     string `env:"APP_NAME" envDefault:"apidemo"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	// LocalesPath overrides the embedded catalogs with a directory of
	// <lang>.yml files.
	LocalesPath   string `env:"LOCALES_PATH"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`

	// RateLimit is the sustained number of requests per minute per client;
	// zero disables limiting. RateBurst defaults to RateLimit.
	RateLimit int `env:"RATE_LIMIT" envDefault:"120"`
	RateBurst int `env:"RATE_BURST"`

	// Backends are optional. When set, their driver package config is
	// loaded and the connection joins the readiness checks.
	PostgresURL string `env:"PG_CONN_URL"`
	RedisURL    string `env:"REDIS_URL"`
	MongoURL    string `env:"MONGODB_URL"`

	// Attachments go to S3 when S3_BUCKET is set, otherwise to AttachmentsDir.
	AttachmentsDir string `env:"ATTACHMENTS_DIR" envDefault:"./data/attachments"`
	S3Bucket       string `env:"S3_BUCKET"`
	MaxAttachment  int64  `env:"MAX_ATTACHMENT_BYTES" envDefault:"10485760"`
}
