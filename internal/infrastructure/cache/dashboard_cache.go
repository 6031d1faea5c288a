package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
)

const defaultKeyPrefix = "ecorating:dashboard"

// DashboardCache keeps dashboard snapshots in Redis under a version counter.
// Writes bump the counter with INCR, so a snapshot is only ever read back for the
// version it was computed at.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{client: client, ttl: ttl, prefix: defaultKeyPrefix}
}

func (c *DashboardCache) versionKey() string {
	return c.prefix + ":version"
}

func (c *DashboardCache) snapshotKey(version int64) string {
	return fmt.Sprintf("%s:v%d", c.prefix, version)
}

// Version returns the current counter. A missing counter is version 0.
func (c *DashboardCache) Version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, c.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *DashboardCache) Get(ctx context.Context, version int64) (*admindomain.Dashboard, bool, error) {
	raw, err := c.client.Get(ctx, c.snapshotKey(version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var dashboard admindomain.Dashboard
	if err := json.Unmarshal(raw, &dashboard); err != nil {
		return nil, false, fmt.Errorf("decode cached dashboard: %w", err)
	}
	return &dashboard, true, nil
}

func (c *DashboardCache) Set(ctx context.Context, version int64, dashboard *admindomain.Dashboard) error {
	payload, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.snapshotKey(version), payload, c.ttl).Err()
}

func (c *DashboardCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.versionKey()).Err()
}
