package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/store"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultUsageCacheSize = 10000

type usageKey struct {
	userID int64
	day    int64
}

// usageRecorder writes one usage row per user and UTC day. Days already
// written are remembered in a bounded LRU; an evicted entry only costs a
// redundant upsert.
type usageRecorder struct {
	seen  *lru.Cache[usageKey, struct{}]
	usage store.UsageRepository
}

func newUsageRecorder(usage store.UsageRepository, size int) (*usageRecorder, error) {
	if size <= 0 {
		size = defaultUsageCacheSize
	}
	seen, err := lru.New[usageKey, struct{}](size)
	if err != nil {
		return nil, fmt.Errorf("create usage cache: %w", err)
	}
	return &usageRecorder{seen: seen, usage: usage}, nil
}

func (u *usageRecorder) RecordUsage(ctx context.Context, userID int64, now time.Time) error {
	day := now.UTC().Truncate(24 * time.Hour)
	key := usageKey{userID: userID, day: day.Unix()}
	if u.seen.Contains(key) {
		return nil
	}

	if err := u.usage.RecordUsage(ctx, userID, day); err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	u.seen.Add(key, struct{}{})
	return nil
}
