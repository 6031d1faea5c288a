package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

func newTestCache(t *testing.T) (*DashboardCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewDashboardCache(client, time.Minute), mr
}

func sampleDashboard() *admindomain.Dashboard {
	return &admindomain.Dashboard{
		Overview: sustainability.OverviewStats{TotalStores: 2, TotalReviews: 3, AvgSystemRating: 3.5},
		Insights: []sustainability.Insight{{
			Type:   sustainability.InsightWarning,
			Title:  "Green Grocer: Low Energy Efficiency",
			Metric: "Energy Efficiency",
		}},
		Performance: []sustainability.StorePerformance{},
		Categories:  []sustainability.CategorySummary{{Name: "Grocery", Stores: 2, AvgScore: 3.5}},
		GeneratedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDashboardCache_VersionStartsAtZero(t *testing.T) {
	c, _ := newTestCache(t)

	v, err := c.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestDashboardCache_SetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, 0, sampleDashboard()))
	got, ok, err := c.Get(ctx, 0)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, sampleDashboard(), got)
	assert.Equal(t, time.Minute, mr.TTL("ecorating:dashboard:v0"))
}

func TestDashboardCache_InvalidateMovesToNewVersion(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, 0, sampleDashboard()))

	require.NoError(t, c.Invalidate(ctx))
	v, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	_, ok, err := c.Get(ctx, v)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDashboardCache_CorruptEntry(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("ecorating:dashboard:v0", "{not json"))

	_, ok, err := c.Get(context.Background(), 0)

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDashboardCache_Unavailable(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, err := c.Version(context.Background())

	assert.Error(t, err)
}
