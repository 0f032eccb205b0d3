package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"country-exchange/core/lock"
	"country-exchange/core/metrics"
	"country-exchange/feature/countries/models"
	"country-exchange/feature/countries/reconcile"
	"country-exchange/feature/countries/sources"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LockKey is the resource name refreshes serialize on.
const LockKey = "countries:refresh"

// Fetcher retrieves raw upstream data.
type Fetcher interface {
	FetchCountries(ctx context.Context) ([]models.RawCountry, error)
	FetchRates(ctx context.Context) (map[string]decimal.Decimal, error)
}

// Store is the persistence the pipeline writes to.
type Store interface {
	UpsertAll(ctx context.Context, records []models.Country) (int, error)
	Count(ctx context.Context) (int64, error)
	MaxTimestamp(ctx context.Context) (*time.Time, error)
}

// Summarizer regenerates the summary artifact. It must not fail the refresh.
type Summarizer interface {
	Run(ctx context.Context) bool
}

// Result describes a successful refresh.
type Result struct {
	ProcessedCount  int
	TotalCount      int64
	LastRefreshedAt *time.Time
	Stats           reconcile.Stats
}

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	// CountriesSource and RatesSource name the upstreams in errors that do not
	// carry a source of their own.
	CountriesSource string
	RatesSource     string
	// SummaryTimeout bounds the background summary.
	SummaryTimeout time.Duration
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Service runs the refresh pipeline.
type Service struct {
	fetcher   Fetcher
	engine    *reconcile.Engine
	store     Store
	summary   Summarizer
	locker    lock.Locker
	logger    *zap.Logger
	opts      Options
	summaries sync.WaitGroup

	mu    sync.RWMutex
	state State
}

// NewService creates a Service.
func NewService(fetcher Fetcher, engine *reconcile.Engine, store Store, summary Summarizer, locker lock.Locker, logger *zap.Logger, opts Options) *Service {
	if opts.CountriesSource == "" {
		opts.CountriesSource = "countries"
	}
	if opts.RatesSource == "" {
		opts.RatesSource = "rates"
	}
	if opts.SummaryTimeout <= 0 {
		opts.SummaryTimeout = 30 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if engine == nil {
		engine = reconcile.NewEngine(nil)
	}
	return &Service{
		fetcher: fetcher,
		engine:  engine,
		store:   store,
		summary: summary,
		locker:  locker,
		logger:  logger,
		opts:    opts,
		state:   StateIdle,
	}
}

// State returns the state of the most recent run.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Service) transition(next State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.CanTransition(next) {
		return fmt.Errorf("illegal refresh transition %s -> %s", s.state, next)
	}
	s.logger.Debug("Refresh state changed", zap.Stringer("from", s.state), zap.Stringer("to", next))
	s.state = next
	return nil
}

func (s *Service) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
}

// Refresh fetches both sources, reconciles, and replaces the stored rows.
// On success the summary image is regenerated in the background; use Wait to
// block until it finishes. Every error is a *Error. A failed refresh leaves
// the stored rows untouched.
func (s *Service) Refresh(ctx context.Context) (*Result, error) {
	start := time.Now()

	lease, err := s.locker.Acquire(ctx, LockKey)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues(metrics.OutcomeInternal).Inc()
		return nil, internal(fmt.Errorf("acquire refresh lock: %w", err))
	}

	result, err := s.run(ctx)
	if err != nil {
		s.release(lease)
		outcome := metrics.OutcomeInternal
		if KindOf(err) == KindSourceUnavailable {
			outcome = metrics.OutcomeSourceUnavailable
		}
		metrics.RefreshTotal.WithLabelValues(outcome).Inc()
		return nil, err
	}

	metrics.RefreshTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	metrics.CountriesUpserted.Add(float64(result.ProcessedCount))

	s.summaries.Add(1)
	go func() {
		defer s.summaries.Done()
		defer s.release(lease)

		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.SummaryTimeout)
		defer cancel()

		s.summary.Run(sctx)
		if err := s.transition(StateDone); err != nil {
			s.logger.Error("Refresh state machine rejected transition", zap.Error(err))
		}
	}()

	return result, nil
}

func (s *Service) run(ctx context.Context) (*Result, error) {
	s.reset()
	if err := s.transition(StateFetching); err != nil {
		return nil, internal(err)
	}

	raws, rates, err := s.fetch(ctx)
	if err != nil {
		s.fail()
		return nil, err
	}
	s.logger.Info("Fetched upstream data", zap.Int("countries", len(raws)), zap.Int("rates", len(rates)))

	if err := s.transition(StateReconciling); err != nil {
		return nil, internal(err)
	}
	records, stats := s.engine.ReconcileAll(raws, rates)
	stamp := s.opts.Now().UTC().Truncate(time.Second)
	for i := range records {
		records[i].LastRefreshedAt = stamp
	}
	if stats.Skipped > 0 {
		s.logger.Warn("Skipped countries without a name", zap.Int("skipped", stats.Skipped))
	}

	if err := s.transition(StatePersisting); err != nil {
		return nil, internal(err)
	}
	processed, err := s.store.UpsertAll(ctx, records)
	if err != nil {
		s.fail()
		return nil, internal(fmt.Errorf("persist countries: %w", err))
	}
	total, last := s.totals(ctx, processed, stamp)
	s.logger.Info("Persisted countries",
		zap.Int("processed", processed),
		zap.Int64("total", total),
		zap.Int("missing_rate", stats.MissingRate),
		zap.Int("no_currency", stats.NoCurrency),
	)

	if err := s.transition(StateSummarizing); err != nil {
		return nil, internal(err)
	}

	return &Result{
		ProcessedCount:  processed,
		TotalCount:      total,
		LastRefreshedAt: last,
		Stats:           stats,
	}, nil
}

// totals reads the table totals after a committed upsert. The rows are already
// durable, so a failed read is logged and replaced with the run's own values.
func (s *Service) totals(ctx context.Context, processed int, stamp time.Time) (int64, *time.Time) {
	total, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Warn("Failed to count countries after refresh", zap.Error(err))
		total = int64(processed)
	}

	last, err := s.store.MaxTimestamp(ctx)
	if err != nil {
		s.logger.Warn("Failed to read last refresh time", zap.Error(err))
		last = nil
		if processed > 0 {
			last = &stamp
		}
	}
	return total, last
}

// fetch runs both upstream calls concurrently. The first failure cancels the other.
func (s *Service) fetch(ctx context.Context) ([]models.RawCountry, map[string]decimal.Decimal, error) {
	var (
		raws  []models.RawCountry
		rates map[string]decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raws, err = s.fetcher.FetchCountries(gctx)
		if err != nil {
			return s.classify(s.opts.CountriesSource, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rates, err = s.fetcher.FetchRates(gctx)
		if err != nil {
			return s.classify(s.opts.RatesSource, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return raws, rates, nil
}

func (s *Service) classify(fallback string, err error) *Error {
	source := fallback
	var se *sources.SourceError
	if errors.As(err, &se) && se.Source != "" {
		source = se.Source
	}
	s.logger.Warn("Upstream fetch failed", zap.String("source", source), zap.Error(err))
	return sourceUnavailable(source, err)
}

func (s *Service) fail() {
	if err := s.transition(StateFailed); err != nil {
		s.logger.Error("Refresh state machine rejected transition", zap.Error(err))
	}
}

func (s *Service) release(lease lock.Lease) {
	if err := lease.Release(context.Background()); err != nil {
		s.logger.Warn("Failed to release refresh lock", zap.Error(err))
	}
}

// Wait blocks until every background summary has finished or ctx ends.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.summaries.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
