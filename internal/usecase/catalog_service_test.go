package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellfound/standards/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu       sync.Mutex
	data     map[string][]byte
	getError error
	setError error
	setCalls int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setError != nil {
		return m.setError
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockRecordStore is a mock implementation of domain.RecordStore
type MockRecordStore struct {
	records    []domain.Standard
	fetchError error
	fetchCalls atomic.Int32
	fetchGate  chan struct{}

	created     []map[string]string
	createError error
}

func (m *MockRecordStore) FetchAll(ctx context.Context) ([]domain.Standard, error) {
	m.fetchCalls.Add(1)
	if m.fetchGate != nil {
		<-m.fetchGate
	}
	if m.fetchError != nil {
		return nil, m.fetchError
	}
	return m.records, nil
}

func (m *MockRecordStore) CreateRecord(ctx context.Context, fields map[string]string) error {
	m.created = append(m.created, fields)
	return m.createError
}

func TestNewCatalogService(t *testing.T) {
	t.Run("creates service with default values", func(t *testing.T) {
		svc := NewCatalogService(&MockRecordStore{}, NewMockCacheRepository(), CatalogServiceConfig{}, nil)
		require.NotNil(t, svc)
		assert.Equal(t, 5*time.Minute, svc.cacheTTL)
	})

	t.Run("creates service with custom values", func(t *testing.T) {
		svc := NewCatalogService(&MockRecordStore{}, nil, CatalogServiceConfig{CacheTTL: time.Hour}, nil)
		assert.Equal(t, time.Hour, svc.cacheTTL)
	})
}

func TestCatalogService_Catalog(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches once then serves from cache", func(t *testing.T) {
		store := &MockRecordStore{records: sampleCatalog()}
		cache := NewMockCacheRepository()
		svc := NewCatalogService(store, cache, CatalogServiceConfig{}, nil)

		first, err := svc.Catalog(ctx)
		require.NoError(t, err)
		second, err := svc.Catalog(ctx)
		require.NoError(t, err)

		assert.Equal(t, ids(first), ids(second))
		assert.Equal(t, int32(1), store.fetchCalls.Load())
		assert.Equal(t, 1, cache.setCalls)
	})

	t.Run("invalidate forces a refetch", func(t *testing.T) {
		store := &MockRecordStore{records: sampleCatalog()}
		svc := NewCatalogService(store, NewMockCacheRepository(), CatalogServiceConfig{}, nil)

		_, _ = svc.Catalog(ctx)
		require.NoError(t, svc.Invalidate(ctx))
		_, _ = svc.Catalog(ctx)

		assert.Equal(t, int32(2), store.fetchCalls.Load())
	})

	t.Run("fetch errors are wrapped as ErrFetch", func(t *testing.T) {
		store := &MockRecordStore{fetchError: errors.New("connection refused")}
		svc := NewCatalogService(store, NewMockCacheRepository(), CatalogServiceConfig{}, nil)

		_, err := svc.Catalog(ctx)
		assert.ErrorIs(t, err, domain.ErrFetch)
	})

	t.Run("schema errors keep their kind", func(t *testing.T) {
		store := &MockRecordStore{fetchError: domain.ErrSchema}
		svc := NewCatalogService(store, nil, CatalogServiceConfig{}, nil)

		_, err := svc.Catalog(ctx)
		assert.ErrorIs(t, err, domain.ErrSchema)
		assert.NotErrorIs(t, err, domain.ErrFetch)
	})

	t.Run("cache write failure still returns records", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.setError = errors.New("full")
		svc := NewCatalogService(&MockRecordStore{records: sampleCatalog()}, cache, CatalogServiceConfig{}, nil)

		got, err := svc.Catalog(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("corrupt cache entry is discarded", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.data[catalogCacheKey] = []byte("{not json")
		store := &MockRecordStore{records: sampleCatalog()}
		svc := NewCatalogService(store, cache, CatalogServiceConfig{}, nil)

		got, err := svc.Catalog(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 3)
		assert.Equal(t, int32(1), store.fetchCalls.Load())
	})
}

func TestCatalogService_ConcurrentMissesShareFetch(t *testing.T) {
	gate := make(chan struct{})
	store := &MockRecordStore{records: sampleCatalog(), fetchGate: gate}
	svc := NewCatalogService(store, nil, CatalogServiceConfig{}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Catalog(context.Background())
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return store.fetchCalls.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Less(t, store.fetchCalls.Load(), int32(5))
}

// ctxBoundStore blocks each fetch until release is closed or the fetch ctx
// ends, whichever comes first.
type ctxBoundStore struct {
	MockRecordStore
	release chan struct{}
}

func (s *ctxBoundStore) FetchAll(ctx context.Context) ([]domain.Standard, error) {
	s.fetchCalls.Add(1)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.release:
		return s.records, nil
	}
}

func TestCatalogService_CancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	store := &ctxBoundStore{MockRecordStore: MockRecordStore{records: sampleCatalog()}, release: make(chan struct{})}
	svc := NewCatalogService(store, NewMockCacheRepository(), CatalogServiceConfig{}, nil)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Catalog(firstCtx)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return store.fetchCalls.Load() == 1 }, time.Second, time.Millisecond)

	type result struct {
		records []domain.Standard
		err     error
	}
	second := make(chan result, 1)
	go func() {
		records, err := svc.Catalog(context.Background())
		second <- result{records, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	err := <-firstErr
	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.ErrorIs(t, err, context.Canceled)

	close(store.release)
	got := <-second
	require.NoError(t, got.err)
	assert.Len(t, got.records, 3)
	assert.Equal(t, int32(1), store.fetchCalls.Load())

	// The detached fetch still filled the cache.
	_, err = svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), store.fetchCalls.Load())
}

func TestCatalogService_Load(t *testing.T) {
	t.Run("failure yields an empty catalog", func(t *testing.T) {
		svc := NewCatalogService(&MockRecordStore{fetchError: errors.New("offline")}, nil, CatalogServiceConfig{}, nil)
		got := svc.Load(context.Background())
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("success returns records", func(t *testing.T) {
		svc := NewCatalogService(&MockRecordStore{records: sampleCatalog()}, nil, CatalogServiceConfig{}, nil)
		assert.Len(t, svc.Load(context.Background()), 3)
	})
}

func TestCatalogService_Queries(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(&MockRecordStore{records: sampleCatalog()}, NewMockCacheRepository(), CatalogServiceConfig{}, nil)

	got, err := svc.Search(ctx, domain.NewSearchFilter().WithQuery("kite"))
	require.NoError(t, err)
	assert.Equal(t, []string{"r3"}, ids(got))

	rec, err := svc.Get(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, "Pour Over", rec.Title)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tool", "Technique", "Taste", "Toy"}, cats)
}
