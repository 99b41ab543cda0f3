package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are stored serialized; Get returns the JSON payload.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RecordStore is the typed view of the hosted table.
type RecordStore interface {
	FetchAll(ctx context.Context) ([]Standard, error)
	CreateRecord(ctx context.Context, fields map[string]string) error
}

// PrefHideOnboarding stores the carousel's "don't show again" choice.
const PrefHideOnboarding = "hideOnboarding"

// PreferenceStore persists small client-side flags with an expiry.
type PreferenceStore interface {
	GetBool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, value bool, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
