package cmd

import (
	"context"
	"fmt"
	"time"

	"country-exchange/core/config"
	"country-exchange/core/database"
	"country-exchange/core/lock"
	"country-exchange/core/logger"
	"country-exchange/core/storage"
	"country-exchange/feature/countries"
	"country-exchange/feature/countries/reconcile"
	"country-exchange/feature/countries/refresh"
	"country-exchange/feature/countries/sources"
	"country-exchange/feature/countries/store"
	"country-exchange/feature/countries/summary"

	"go.uber.org/zap"
)

// runtime holds the wired application shared by every command.
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	refresher *refresh.Service
	service   *countries.Service
}

// bootstrap loads configuration and wires storage, locking and the pipeline.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))

	st := store.New(db, cfg.Database.BatchSize)
	if err := st.Migrate(ctx); err != nil {
		return nil, err
	}

	artifacts, err := newArtifactStore(ctx, cfg, logg)
	if err != nil {
		return nil, err
	}

	locker, err := lock.New(cfg.Lock, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh lock: %w", err)
	}

	renderer := summary.NewPNGRenderer(cfg.Summary)
	trigger := summary.NewTrigger(st, renderer, artifacts, cfg.Summary, logg)

	fetcher := sources.NewClient(cfg.Sources, nil)
	refresher := refresh.NewService(
		fetcher,
		reconcile.NewEngine(nil),
		st,
		trigger,
		locker,
		logg,
		refresh.Options{
			CountriesSource: fetcher.CountriesSource(),
			RatesSource:     fetcher.RatesSource(),
			SummaryTimeout:  cfg.Summary.Timeout(),
		},
	)

	return &runtime{
		cfg:       cfg,
		logger:    logg,
		refresher: refresher,
		service:   countries.NewService(st, refresher, artifacts, logg),
	}, nil
}

func newArtifactStore(ctx context.Context, cfg *config.Config, logg *zap.Logger) (summary.ArtifactStore, error) {
	if cfg.Summary.Store == summary.StoreMemory {
		logg.Info("Summary image kept in memory")
		return summary.NewMemoryStore(), nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, err
	}

	bctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := storage.EnsureBucket(bctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		return nil, err
	}
	logg.Info("Summary image stored in bucket", zap.String("bucket", cfg.Storage.Bucket), zap.String("object", cfg.Summary.ObjectName))
	return summary.NewBucketStore(client, cfg.Storage.Bucket, cfg.Summary.ObjectName), nil
}
