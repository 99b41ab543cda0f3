package main

import (
	"go.uber.org/zap"

	"github.com/swellfound/standards/internal/domain"
	"github.com/swellfound/standards/internal/infrastructure/airtable"
	"github.com/swellfound/standards/internal/infrastructure/cache"
	"github.com/swellfound/standards/internal/infrastructure/prefs"
	"github.com/swellfound/standards/internal/usecase"
)

// services bundles the shared infrastructure every command builds on.
type services struct {
	cache       *cache.MemoryCache
	catalog     *usecase.CatalogService
	submissions *usecase.SubmissionService
}

func newServices() *services {
	client := airtable.NewClient(airtable.ClientConfig{
		APIKey:            cfg.Airtable.APIKey,
		BaseURL:           cfg.Airtable.BaseURL,
		BaseID:            cfg.Airtable.BaseID,
		Table:             cfg.Airtable.Table,
		View:              cfg.Airtable.View,
		FilterFormula:     cfg.Airtable.FilterFormula,
		RequestsPerSecond: cfg.Airtable.RequestsPerSecond,
		Timeout:           cfg.Airtable.Timeout,
	}, logger)

	memoryCache := cache.NewMemoryCacheWithInterval(cfg.Cache.CleanupInterval)
	logger.Debug("services initialized",
		zap.String("base_url", cfg.Airtable.BaseURL),
		zap.String("table", cfg.Airtable.Table),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	return &services{
		cache: memoryCache,
		catalog: usecase.NewCatalogService(client, memoryCache, usecase.CatalogServiceConfig{
			CacheTTL: cfg.Cache.TTL,
		}, logger),
		submissions: usecase.NewSubmissionService(client, logger),
	}
}

func (s *services) Close() {
	_ = s.cache.Close()
}

// openPrefs opens the preference database. The returned store is nil when
// the database cannot be opened; callers degrade to always showing the
// welcome cards.
func openPrefs() (domain.PreferenceStore, func()) {
	store, err := prefs.NewSQLiteStore(cfg.Prefs.Path)
	if err != nil {
		logger.Warn("preferences unavailable", zap.String("path", cfg.Prefs.Path), zap.Error(err))
		return nil, func() {}
	}
	return store, func() { _ = store.Close() }
}
