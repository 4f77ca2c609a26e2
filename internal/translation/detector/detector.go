// Package detector infers the source language of submitted text. The provider
// does the real work; a local heuristic keeps detection from ever failing.
package detector

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"registrar/internal/translation/metrics"
	"registrar/internal/translation/ports"
)

// recognizedCodes is the allow-list of ISO 639-1 codes this deployment
// expects. An unrecognized normalized code only triggers a warning, never a
// failure.
var recognizedCodes = map[string]struct{}{
	"en": {}, "vi": {}, "fr": {}, "de": {}, "es": {}, "it": {}, "pt": {},
	"ru": {}, "ja": {}, "ko": {}, "zh": {}, "th": {}, "id": {}, "ms": {},
	"km": {}, "lo": {}, "nl": {}, "pl": {}, "ar": {}, "hi": {},
}

// vietnameseRe matches any Vietnamese diacritic letter. It is the terminal
// fallback when the provider cannot be reached.
var vietnameseRe = regexp.MustCompile(`(?i)[àáảãạăằắẳẵặâầấẩẫậèéẻẽẹêềếểễệìíỉĩịòóỏõọôồốổỗộơờớởỡợùúủũụưừứửữựỳýỷỹỵđ]`)

// Detector resolves the language of a text sample via the provider, degrading
// to a local heuristic on provider failure.
type Detector struct {
	provider  ports.Provider
	fallback  string
	sampleCap int
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Detector)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		d.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Detector) {
		d.metrics = m
	}
}

// New builds a Detector. fallback is the code returned for empty input and for
// undetectable non-Vietnamese text; sampleCap bounds the text sent to the
// provider.
func New(provider ports.Provider, fallback string, sampleCap int, opts ...Option) *Detector {
	d := &Detector{
		provider:  provider,
		fallback:  fallback,
		sampleCap: sampleCap,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the ISO language code of text. It never fails: empty input
// and provider errors both resolve to a usable code.
func (d *Detector) Detect(ctx context.Context, text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return d.fallback
	}
	if runes := []rune(sample); d.sampleCap > 0 && len(runes) > d.sampleCap {
		sample = string(runes[:d.sampleCap])
	}

	code, err := d.provider.DetectLanguage(ctx, sample)
	if err != nil {
		d.metrics.RecordProviderFailure("detect")
		d.logger.Warn("language detection failed, using heuristic", "error", err)
		return d.heuristic(sample)
	}

	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return d.heuristic(sample)
	}
	if _, ok := recognizedCodes[code]; !ok {
		d.logger.Warn("provider returned unrecognized language code", "code", code)
	}
	return code
}

// heuristic is the last-resort local detection: Vietnamese diacritics mean
// Vietnamese, anything else resolves to the default code. It must never fail.
func (d *Detector) heuristic(text string) string {
	if vietnameseRe.MatchString(text) {
		return "vi"
	}
	return d.fallback
}
