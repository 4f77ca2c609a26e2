package provider

import (
	"context"
	"log/slog"

	"registrar/internal/translation/ports"
	"registrar/pkg/platform/circuit"
	"registrar/pkg/platform/sentinel"
)

// BreakerProvider short-circuits provider calls while the upstream is down.
// Callers see sentinel.ErrUnavailable immediately instead of waiting out a
// timeout on every field; the engine and detector already degrade to
// source-only rows and the heuristic on any provider error.
type BreakerProvider struct {
	inner   ports.Provider
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func WithBreaker(inner ports.Provider, breaker *circuit.Breaker, logger *slog.Logger) *BreakerProvider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BreakerProvider{inner: inner, breaker: breaker, logger: logger}
}

func (p *BreakerProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	if !p.breaker.Allow() {
		return "", sentinel.ErrUnavailable
	}
	lang, err := p.inner.DetectLanguage(ctx, text)
	p.record(ctx, err)
	return lang, err
}

func (p *BreakerProvider) Translate(ctx context.Context, text, from, to string) (string, error) {
	if !p.breaker.Allow() {
		return "", sentinel.ErrUnavailable
	}
	out, err := p.inner.Translate(ctx, text, from, to)
	p.record(ctx, err)
	return out, err
}

func (p *BreakerProvider) record(ctx context.Context, err error) {
	if err != nil {
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.logger.WarnContext(ctx, "translation provider circuit opened", "breaker", p.breaker.Name())
		}
		return
	}
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.logger.InfoContext(ctx, "translation provider circuit closed", "breaker", p.breaker.Name())
	}
}
