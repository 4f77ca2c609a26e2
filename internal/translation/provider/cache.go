package provider

import (
	"context"
	"log/slog"

	"registrar/internal/translation/metrics"
	"registrar/internal/translation/ports"
)

// CachingProvider memoizes translate calls so delete-then-recreate cycles do
// not re-translate unchanged text. Detection is never cached: samples are
// cheap and detection results feed language decisions that should stay fresh.
type CachingProvider struct {
	inner   ports.Provider
	cache   ports.Cache
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type CacheOption func(*CachingProvider)

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(p *CachingProvider) {
		p.logger = logger
	}
}

func WithCacheMetrics(m *metrics.Metrics) CacheOption {
	return func(p *CachingProvider) {
		p.metrics = m
	}
}

// WithCache wraps inner with a read-through cache. A nil cache returns inner
// unchanged so wiring stays unconditional in main.
func WithCache(inner ports.Provider, cache ports.Cache, opts ...CacheOption) ports.Provider {
	if cache == nil {
		return inner
	}
	p := &CachingProvider{
		inner:  inner,
		cache:  cache,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *CachingProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	return p.inner.DetectLanguage(ctx, text)
}

// Translate consults the cache first; every cache error counts as a miss so a
// degraded cache never blocks translation.
func (p *CachingProvider) Translate(ctx context.Context, text, from, to string) (string, error) {
	if value, err := p.cache.Get(ctx, text, from, to); err == nil {
		p.metrics.RecordCacheRequest("hit")
		return value, nil
	}
	p.metrics.RecordCacheRequest("miss")

	value, err := p.inner.Translate(ctx, text, from, to)
	if err != nil {
		return "", err
	}
	if err := p.cache.Set(ctx, text, from, to, value); err != nil {
		p.logger.Warn("translation cache write failed", "error", err)
	}
	return value, nil
}
