// Command server wires the translation pipeline and the catalog glue behind
// one HTTP listener. Business logic lives in the internal packages; main only
// assembles dependencies and owns the process lifecycle.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"registrar/internal/audit"
	"registrar/internal/platform/config"
	"registrar/internal/platform/httpserver"
	"registrar/internal/platform/logger"
	platformredis "registrar/internal/platform/redis"
	"registrar/internal/translation/detector"
	"registrar/internal/translation/engine"
	"registrar/internal/translation/handler"
	"registrar/internal/translation/metrics"
	"registrar/internal/translation/ports"
	"registrar/internal/translation/provider"
	"registrar/internal/translation/service"
	"registrar/internal/translation/store"
	"registrar/pkg/platform/circuit"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	translationStore, closeStore, err := newTranslationStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		if err := redisClient.Health(ctx); err != nil {
			log.Warn("redis unreachable at startup, translate caching degraded", "error", err)
		}
	}

	var prov ports.Provider = provider.NewHTTP(cfg.Provider)
	prov = provider.WithBreaker(prov, circuit.New("translate-provider"), log)
	if cache := provider.NewRedisCache(redisClient, cfg.Redis.CacheTTL); cache != nil {
		prov = provider.WithCache(prov, cache,
			provider.WithCacheLogger(log),
			provider.WithCacheMetrics(m),
		)
	}

	det := detector.New(prov, cfg.Translation.DefaultLanguage, cfg.Translation.DetectionSampleCap,
		detector.WithLogger(log),
		detector.WithMetrics(m),
	)

	engineOpts := []engine.Option{
		engine.WithLogger(log),
		engine.WithMetrics(m),
	}
	if pg, ok := translationStore.(*store.PostgresStore); ok {
		engineOpts = append(engineOpts, engine.WithTxRunner(pg))
	}

	eng, err := engine.New(translationStore, prov, det, cfg.Translation, engineOpts...)
	if err != nil {
		return err
	}

	// Audit events leave the request path through a channel; the worker
	// drains it into the store.
	inbox := make(chan audit.Event, 64)
	auditStore := audit.NewInMemoryStore()
	auditWorker := audit.NewWorker(auditStore, inbox)
	publisher := audit.NewPublisher(audit.NewChannelSink(inbox))

	translations, err := service.New(eng, translationStore,
		service.WithLogger(log),
		service.WithAuditPublisher(publisher),
	)
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	handler.New(translations, log).Register(router)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting registrar", "addr", cfg.Addr, "languages", cfg.Translation.SupportedLanguages)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-workerDone
	log.Info("shutdown complete")
	return nil
}

// newTranslationStore prefers postgres and falls back to memory so the server
// starts without infrastructure in development.
func newTranslationStore(ctx context.Context, cfg config.Config, log *slog.Logger) (ports.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory translation store")
		return store.NewInMemory(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, err
	}

	return store.NewPostgres(db), func() { db.Close() }, nil
}
