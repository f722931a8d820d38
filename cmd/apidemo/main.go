// Command apidemo serves a small notes API that exercises the error
// taxonomy, the params DSL and the localized error renderer.
package main

import (
	"context"
	"embed"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/apikit/handler"
	"github.com/dmitrymomot/apikit/pkg/apierror"
	"github.com/dmitrymomot/apikit/pkg/blob"
	"github.com/dmitrymomot/apikit/pkg/clientip"
	"github.com/dmitrymomot/apikit/pkg/config"
	"github.com/dmitrymomot/apikit/pkg/environment"
	"github.com/dmitrymomot/apikit/pkg/errmap"
	"github.com/dmitrymomot/apikit/pkg/httpserver"
	"github.com/dmitrymomot/apikit/pkg/i18n"
	"github.com/dmitrymomot/apikit/pkg/logger"
	"github.com/dmitrymomot/apikit/pkg/mongo"
	"github.com/dmitrymomot/apikit/pkg/pg"
	"github.com/dmitrymomot/apikit/pkg/ratelimit"
	"github.com/dmitrymomot/apikit/pkg/redis"
	"github.com/dmitrymomot/apikit/pkg/requestid"
)

//go:embed locales
var locales embed.FS

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("apidemo stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	tr, err := newTranslator(ctx, cfg, log)
	if err != nil {
		return err
	}

	renderer, err := newRenderer(log, tr)
	if err != nil {
		return err
	}

	checks, closeAll, err := connectBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeAll()

	attachments, err := newAttachmentStore(ctx, cfg)
	if err != nil {
		return err
	}

	var limiter ratelimit.Limiter
	if cfg.RateLimit > 0 {
		store := ratelimit.NewMemoryStore()
		defer store.Close()
		tb, err := ratelimit.NewTokenBucket(store, cfg.RateLimit, time.Minute, ratelimit.WithBurst(cfg.RateBurst))
		if err != nil {
			return err
		}
		limiter = tb
	}

	// Every class is registered at init; late registrations are bugs.
	apierror.Default().Freeze()

	router := newRouter(deps{
		log:      log,
		env:      environment.Parse(cfg.Env),
		tr:       tr,
		renderer: renderer,
		notes:    newNoteStore(),
		files:    attachments,
		maxFile:  cfg.MaxAttachment,
		limiter:  limiter,
		checks:   checks,
	})

	srv := httpserver.NewFromConfig(cfg.Config, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

func newTranslator(ctx context.Context, cfg appConfig, log *slog.Logger) (*i18n.Translator, error) {
	var adapter i18n.TranslationAdapter
	if cfg.LocalesPath != "" {
		adapter = i18n.NewDirectoryAdapter(i18n.NewYAMLParser(), cfg.LocalesPath)
	} else {
		adapter = i18n.NewFSAdapter(i18n.NewYAMLParser(), locales, "locales")
	}
	return i18n.NewTranslator(ctx, adapter,
		i18n.WithDefaultLanguage(cfg.DefaultLocale),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(true),
	)
}

// newRenderer builds the error renderer with every foreign error source the
// service can produce.
func newRenderer(log *slog.Logger, tr *i18n.Translator) (*handler.ErrorRenderer, error) {
	r := handler.NewErrorRenderer(log, handler.ErrorRendererConfig{
		Catalog: tr,
		Extras: func(err error) map[string]any {
			if errors.Is(err, context.DeadlineExceeded) {
				return map[string]any{"retryable": true}
			}
			return nil
		},
	})
	err := errmap.Register(r,
		errmap.Context,
		errmap.AWS,
		errmap.FS,
		blob.Errors,
		pg.Errors,
		redis.Errors,
		mongo.Errors,
		func(m errmap.Mapper) error { return m.MapError(errNoteMissing, apierror.NotFound) },
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func newAttachmentStore(ctx context.Context, cfg appConfig) (blob.Store, error) {
	if cfg.S3Bucket == "" {
		return blob.NewLocalStore(cfg.AttachmentsDir)
	}
	var s3Cfg blob.S3Config
	if err := config.Load(&s3Cfg); err != nil {
		return nil, err
	}
	return blob.NewS3Store(ctx, s3Cfg)
}

// connectBackends opens the optional database connections and returns their
// readiness checks.
func connectBackends(ctx context.Context, cfg appConfig, log *slog.Logger) ([]httpserver.HealthCheck, func(), error) {
	var (
		checks  []httpserver.HealthCheck
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) ([]httpserver.HealthCheck, func(), error) {
		closeAll()
		return nil, func() {}, err
	}

	if cfg.PostgresURL != "" {
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return fail(err)
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, pool.Close)
		checks = append(checks, pg.Healthcheck(pool))
		log.Info("postgres connected", logger.Component("apidemo"))
	}

	if cfg.RedisURL != "" {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return fail(err)
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = client.Close() })
		checks = append(checks, redis.Healthcheck(client))
		log.Info("redis connected", logger.Component("apidemo"))
	}

	if cfg.MongoURL != "" {
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return fail(err)
		}
		client, err := mongo.Connect(ctx, mongoCfg)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		checks = append(checks, mongo.Healthcheck(client))
		log.Info("mongodb connected", logger.Component("apidemo"))
	}

	return checks, closeAll, nil
}
