// Package engine orchestrates language detection, multi-target translation
// and storage for batches of entity fields.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"registrar/internal/platform/config"
	"registrar/internal/translation/metrics"
	"registrar/internal/translation/models"
	"registrar/internal/translation/ports"
	dErrors "registrar/pkg/domain-errors"
)

// Engine implements the save path of the translation overlay: one call
// persists a source-language row per field plus a best-effort translated row
// per supported target language.
//
// Provider failures never fail a save; only structural validation and storage
// failures surface to the caller.
type Engine struct {
	store    ports.Store
	provider ports.Provider
	detector ports.Detector
	cfg      config.TranslationConfig
	logger   *slog.Logger
	metrics  *metrics.Metrics
	runner   ports.TxRunner
	keys     *keyedMutex
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithTxRunner makes the delete and re-create halves of a replace atomic.
// Without it the per-entity lock still serializes writers, but a crash
// between the two halves can leave the entity without rows until the next
// write.
func WithTxRunner(runner ports.TxRunner) Option {
	return func(e *Engine) {
		e.runner = runner
	}
}

func New(store ports.Store, provider ports.Provider, detector ports.Detector, cfg config.TranslationConfig, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("translation store is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("translation provider is required")
	}
	if detector == nil {
		return nil, fmt.Errorf("language detector is required")
	}
	if len(cfg.SupportedLanguages) == 0 {
		return nil, fmt.Errorf("at least one supported language is required")
	}
	if cfg.TranslateConcurrency <= 0 {
		cfg.TranslateConcurrency = 1
	}

	e := &Engine{
		store:    store,
		provider: provider,
		detector: detector,
		cfg:      cfg,
		logger:   slog.New(slog.DiscardHandler),
		keys:     newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// SaveTranslations detects the source language of the request, persists one
// source row per field and attempts one translated row per field per target
// language. Target failures are logged and skipped; the source rows are always
// written.
func (e *Engine) SaveTranslations(ctx context.Context, req models.Request) error {
	if err := validate(req); err != nil {
		return err
	}

	unlock := e.keys.lock(req.EntityType, req.EntityID)
	defer unlock()

	return e.save(ctx, req)
}

// ReplaceTranslations drops every stored row for the entity and re-creates the
// full set from the request. The delete and the re-create run under the same
// per-entity lock so concurrent updates cannot interleave the two phases.
func (e *Engine) ReplaceTranslations(ctx context.Context, req models.Request) error {
	if err := validate(req); err != nil {
		return err
	}

	unlock := e.keys.lock(req.EntityType, req.EntityID)
	defer unlock()

	// Provider calls happen before the storage phase so no transaction is
	// held open across the network.
	rows, sourceCount, sourceLang := e.buildRows(ctx, req)

	replace := func(ctx context.Context) error {
		if _, err := e.store.DeleteMany(ctx, req.EntityType, req.EntityID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear existing translations")
		}
		return e.persist(ctx, req, rows, sourceCount, sourceLang)
	}
	if e.runner != nil {
		return e.runner.RunInTx(ctx, replace)
	}
	return replace(ctx)
}

func validate(req models.Request) error {
	if req.EntityType == "" || req.EntityID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "entity type and id are required")
	}
	if len(req.Fields) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "request has no fields to translate")
	}
	return nil
}

func (e *Engine) save(ctx context.Context, req models.Request) error {
	rows, sourceCount, sourceLang := e.buildRows(ctx, req)
	return e.persist(ctx, req, rows, sourceCount, sourceLang)
}

// buildRows detects the source language and assembles the full row set,
// source rows plus whatever target rows the provider could produce.
func (e *Engine) buildRows(ctx context.Context, req models.Request) ([]models.Translation, int, string) {
	start := time.Now()
	defer func() {
		e.metrics.ObserveSaveLatency(time.Since(start))
	}()

	// All fields of one entity are assumed to share a source language, so any
	// one non-empty value serves as the detection sample.
	sourceLang := e.detector.Detect(ctx, detectionSample(req.Fields))

	rows := make([]models.Translation, 0, len(req.Fields)*len(e.cfg.SupportedLanguages))
	for field, value := range req.Fields {
		rows = append(rows, models.Translation{
			EntityType: req.EntityType,
			EntityID:   req.EntityID,
			Field:      field,
			Lang:       sourceLang,
			Value:      value,
		})
	}
	sourceCount := len(rows)

	targets := e.targetLanguages(sourceLang)
	if len(targets) > 0 {
		rows = append(rows, e.translateTargets(ctx, req, sourceLang, targets)...)
	}
	return rows, sourceCount, sourceLang
}

func (e *Engine) persist(ctx context.Context, req models.Request, rows []models.Translation, sourceCount int, sourceLang string) error {
	count, err := e.store.CreateMany(ctx, rows)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist translations")
	}

	e.metrics.RecordRowsWritten("source", sourceCount)
	e.metrics.RecordRowsWritten("target", count-sourceCount)
	e.logger.Info("translations saved",
		"entity_type", req.EntityType,
		"entity_id", req.EntityID,
		"source_lang", sourceLang,
		"rows", count,
	)
	return nil
}

// translateTargets runs the target-language fan-out through a bounded worker
// group. Each (language, field) pair fails independently: a provider error
// drops that one row and the rest of the batch proceeds.
func (e *Engine) translateTargets(ctx context.Context, req models.Request, sourceLang string, targets []string) []models.Translation {
	var (
		mu   sync.Mutex
		rows []models.Translation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.TranslateConcurrency)

	for _, target := range targets {
		for field, value := range req.Fields {
			if strings.TrimSpace(value) == "" {
				e.metrics.RecordSkippedField("empty")
				continue
			}
			if len([]rune(value)) > e.cfg.FieldSizeCap {
				e.metrics.RecordSkippedField("oversized")
				e.logger.Warn("field exceeds size cap, skipping translation",
					"entity_type", req.EntityType,
					"entity_id", req.EntityID,
					"field", field,
					"lang", target,
				)
				continue
			}

			g.Go(func() error {
				translateStart := time.Now()
				translated, err := e.provider.Translate(gctx, value, sourceLang, target)
				e.metrics.ObserveTranslateLatency(time.Since(translateStart))
				if err != nil {
					e.metrics.RecordProviderFailure("translate")
					e.logger.Warn("translation failed, omitting row",
						"entity_type", req.EntityType,
						"entity_id", req.EntityID,
						"field", field,
						"lang", target,
						"error", err,
					)
					return nil
				}

				mu.Lock()
				rows = append(rows, models.Translation{
					EntityType: req.EntityType,
					EntityID:   req.EntityID,
					Field:      field,
					Lang:       target,
					Value:      translated,
				})
				mu.Unlock()
				return nil
			})
		}
	}

	// Workers never return errors; failures are absorbed per task.
	_ = g.Wait()
	return rows
}

func (e *Engine) targetLanguages(sourceLang string) []string {
	targets := make([]string, 0, len(e.cfg.SupportedLanguages))
	for _, lang := range e.cfg.SupportedLanguages {
		if lang != sourceLang {
			targets = append(targets, lang)
		}
	}
	return targets
}

func detectionSample(fields map[string]string) string {
	for _, value := range fields {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
