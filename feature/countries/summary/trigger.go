package summary

import (
	"context"
	"fmt"
	"time"

	"country-exchange/core/metrics"
	"country-exchange/feature/countries/models"

	"go.uber.org/zap"
)

// Source is the read side of the country store the summary needs.
type Source interface {
	Count(ctx context.Context) (int64, error)
	TopByGDP(ctx context.Context, n int) ([]models.Country, error)
	MaxTimestamp(ctx context.Context) (*time.Time, error)
}

// Trigger regenerates the summary image after a refresh.
type Trigger struct {
	source    Source
	renderer  Renderer
	artifacts ArtifactStore
	topN      int
	logger    *zap.Logger
}

// NewTrigger creates a Trigger.
func NewTrigger(source Source, renderer Renderer, artifacts ArtifactStore, cfg Config, logger *zap.Logger) *Trigger {
	topN := cfg.TopN
	if topN <= 0 {
		topN = 5
	}
	return &Trigger{source: source, renderer: renderer, artifacts: artifacts, topN: topN, logger: logger}
}

// Build reads the current aggregates.
func (t *Trigger) Build(ctx context.Context) (Summary, error) {
	total, err := t.source.Count(ctx)
	if err != nil {
		return Summary{}, err
	}
	top, err := t.source.TopByGDP(ctx, t.topN)
	if err != nil {
		return Summary{}, err
	}
	last, err := t.source.MaxTimestamp(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{TotalCountries: total, Top: top, LastRefreshedAt: last}, nil
}

// Generate builds, renders and stores the summary, returning the first failure.
func (t *Trigger) Generate(ctx context.Context) error {
	s, err := t.Build(ctx)
	if err != nil {
		return fmt.Errorf("build summary: %w", err)
	}
	data, err := t.renderer.Render(s)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	if err := t.artifacts.Put(ctx, data, t.renderer.ContentType()); err != nil {
		return fmt.Errorf("store summary: %w", err)
	}
	return nil
}

// Run is Generate with failures logged, counted and swallowed.
// It reports whether a new image was stored.
func (t *Trigger) Run(ctx context.Context) bool {
	start := time.Now()
	if err := t.Generate(ctx); err != nil {
		metrics.SummaryFailures.Inc()
		t.logger.Error("Summary image generation failed", zap.Error(err))
		return false
	}
	t.logger.Info("Summary image updated", zap.Duration("duration", time.Since(start)))
	return true
}
