package overlay

import (
	"context"
	"log/slog"

	"registrar/internal/translation/metrics"
	"registrar/internal/translation/ports"
)

// Applier overwrites entity fields in place with stored translations for a
// requested language. It is strictly best-effort: any fetch or apply problem
// is logged and swallowed so a successful primary fetch can never turn into a
// failed response.
type Applier struct {
	store    ports.Store
	registry *Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Applier)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Applier) {
		a.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Applier) {
		a.metrics = m
	}
}

func NewApplier(store ports.Store, registry *Registry, opts ...Option) *Applier {
	a := &Applier{
		store:    store,
		registry: registry,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply overlays entity (and its registered relations, recursively) with the
// stored translations for lang. Entities without stored rows are left
// untouched: they already carry their original-language values.
func (a *Applier) Apply(ctx context.Context, entity Entity, lang string) {
	if entity == nil || lang == "" {
		return
	}

	kind := entity.TranslationKind()
	rule, ok := a.registry.Rule(kind)
	if !ok {
		a.logger.Debug("no overlay rule registered", "kind", kind)
		return
	}

	rows, err := a.store.FindAll(ctx, kind, entity.TranslationID(), ports.Filter{Lang: lang})
	if err != nil {
		a.metrics.RecordOverlay("error")
		a.logger.Warn("translation lookup failed, serving original values",
			"kind", kind,
			"entity_id", entity.TranslationID(),
			"lang", lang,
			"error", err,
		)
	} else if len(rows) == 0 {
		a.metrics.RecordOverlay("empty")
	} else {
		values := make(map[string]string, len(rows))
		for _, row := range rows {
			if rule.allowsField(row.Field) {
				values[row.Field] = row.Value
			}
		}
		if len(values) > 0 {
			entity.ApplyTranslations(values)
			a.metrics.RecordOverlay("applied")
		}
	}

	for _, relation := range rule.Relations {
		if related := entity.RelatedTranslatable(relation); related != nil {
			a.Apply(ctx, related, lang)
		}
	}
}

// ApplyAll overlays each entity sequentially. Lookups are intentionally not
// batched: one FindAll per entity keeps the store contract simple.
func (a *Applier) ApplyAll(ctx context.Context, entities []Entity, lang string) {
	for _, entity := range entities {
		a.Apply(ctx, entity, lang)
	}
}
