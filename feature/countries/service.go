package countries

import (
	"context"

	"country-exchange/feature/countries/models"
	"country-exchange/feature/countries/refresh"
	"country-exchange/feature/countries/store"
	"country-exchange/feature/countries/summary"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Refresher is the pipeline entry point the HTTP layer triggers.
type Refresher interface {
	Refresh(ctx context.Context) (*refresh.Result, error)
}

// Service exposes the read surface and the refresh trigger.
type Service struct {
	store     *store.Store
	refresher Refresher
	artifacts summary.ArtifactStore
	logger    *zap.Logger
	images    singleflight.Group
}

// NewService creates a Service.
func NewService(st *store.Store, refresher Refresher, artifacts summary.ArtifactStore, logger *zap.Logger) *Service {
	return &Service{store: st, refresher: refresher, artifacts: artifacts, logger: logger}
}

// Refresh runs the pipeline.
func (s *Service) Refresh(ctx context.Context) (*refresh.Result, error) {
	return s.refresher.Refresh(ctx)
}

// List returns countries matching f.
func (s *Service) List(ctx context.Context, f store.Filter) ([]models.Country, error) {
	return s.store.List(ctx, f)
}

// Get returns one country by name, case-insensitively.
func (s *Service) Get(ctx context.Context, name string) (*models.Country, error) {
	return s.store.GetByName(ctx, name)
}

// Delete removes one country by name.
func (s *Service) Delete(ctx context.Context, name string) error {
	return s.store.DeleteByName(ctx, name)
}

// Status returns the row count and the latest refresh time.
func (s *Service) Status(ctx context.Context) (*models.Status, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	last, err := s.store.MaxTimestamp(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Status{TotalCountries: total, LastRefreshedAt: last}, nil
}

// SummaryImage returns the stored summary image. Concurrent callers share one
// download, which is detached from any single caller's cancellation; each caller
// still stops waiting when its own ctx ends.
func (s *Service) SummaryImage(ctx context.Context) ([]byte, error) {
	ch := s.images.DoChan("summary", func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		ok, err := s.artifacts.Exists(fctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, summary.ErrNotFound
		}
		return s.artifacts.Get(fctx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}
