package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/swellfound/standards/internal/domain"
)

const catalogCacheKey = "catalog:standards"

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	CacheTTL time.Duration
}

// CatalogService fetches the live catalog once per TTL and answers
// filter queries against it.
type CatalogService struct {
	store    domain.RecordStore
	cache    domain.CacheRepository
	cacheTTL time.Duration
	group    singleflight.Group
	logger   *zap.Logger
}

// NewCatalogService creates a catalog service. A nil cache disables caching.
func NewCatalogService(
	store domain.RecordStore,
	cache domain.CacheRepository,
	config CatalogServiceConfig,
	logger *zap.Logger,
) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}
	return &CatalogService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.Named("catalog"),
	}
}

// Load fetches the catalog for an interactive session. Failures are logged
// and yield an empty catalog so the UI can still render.
func (s *CatalogService) Load(ctx context.Context) []domain.Standard {
	records, err := s.Catalog(ctx)
	if err != nil {
		s.logger.Warn("catalog fetch failed, continuing with empty catalog", zap.Error(err))
		return []domain.Standard{}
	}
	return records
}

// Catalog returns the cached catalog, fetching it on a miss. Concurrent
// misses share one fetch. The shared fetch is detached from any single
// caller's cancellation; each caller stops waiting when its own ctx ends.
func (s *CatalogService) Catalog(ctx context.Context) ([]domain.Standard, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(catalogCacheKey, func() (interface{}, error) {
		return s.fetch(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", domain.ErrFetch, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			err := res.Err
			if !errors.Is(err, domain.ErrFetch) && !errors.Is(err, domain.ErrSchema) {
				err = fmt.Errorf("%w: %w", domain.ErrFetch, err)
			}
			return nil, err
		}
		if res.Shared {
			s.logger.Debug("catalog fetch shared")
		}
		return res.Val.([]domain.Standard), nil
	}
}

func (s *CatalogService) fetch(ctx context.Context) ([]domain.Standard, error) {
	start := time.Now()
	records, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("catalog fetched",
		zap.Int("records", len(records)),
		zap.Duration("elapsed", time.Since(start)))
	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, records, s.cacheTTL); err != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return records, nil
}

func (s *CatalogService) fromCache(ctx context.Context) ([]domain.Standard, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, catalogCacheKey)
	if err != nil {
		return nil, false
	}
	var records []domain.Standard
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("discarding unreadable cached catalog", zap.Error(err))
		_ = s.cache.Delete(ctx, catalogCacheKey)
		return nil, false
	}
	if records == nil {
		records = []domain.Standard{}
	}
	return records, true
}

// Invalidate drops the cached catalog so the next call refetches.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, catalogCacheKey)
}

// Search applies a filter to the catalog.
func (s *CatalogService) Search(ctx context.Context, state domain.FilterState) ([]domain.Standard, error) {
	records, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyFilter(records, state), nil
}

// Get returns one record by id.
func (s *CatalogService) Get(ctx context.Context, id string) (domain.Standard, error) {
	records, err := s.Catalog(ctx)
	if err != nil {
		return domain.Standard{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Standard{}, fmt.Errorf("%w: standard %q", domain.ErrNotFound, id)
}

// Categories returns the distinct type tags in catalog order.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	records, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return Categories(records), nil
}
