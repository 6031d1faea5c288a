package application

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
	"github.com/sngm3741/ecorating-services/api/internal/metrics"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

// PerformanceRows is the number of stores listed in the dashboard performance table.
const PerformanceRows = 5

type dashboardService struct {
	source   SnapshotSource
	cache    DashboardCache
	renderer WorkbookRenderer
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// NewDashboardService builds the retailer dashboard use-cases. cache and renderer may be nil.
func NewDashboardService(source SnapshotSource, cache DashboardCache, renderer WorkbookRenderer, logger *zap.SugaredLogger) DashboardService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &dashboardService{
		source:   source,
		cache:    cache,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}
}

// Snapshot returns the cached dashboard for the current cache version, computing it on a miss.
// Load failures degrade to empty collections instead of failing the request.
func (s *dashboardService) Snapshot(ctx context.Context) (*admindomain.Dashboard, error) {
	version, cacheable := s.cacheVersion(ctx)
	if cacheable {
		cached, ok, err := s.cache.Get(ctx, version)
		switch {
		case err != nil:
			metrics.DashboardCache.WithLabelValues("error").Inc()
			s.logger.Warnw("dashboard cache read failed", "version", version, "error", err)
		case ok:
			metrics.DashboardCache.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.DashboardCache.WithLabelValues("miss").Inc()
		}
	}

	stores, ratings, err := s.load(ctx)
	degraded := err != nil
	if degraded {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Errorw("dashboard load failed, serving empty snapshot", "error", err)
	}

	dashboard := BuildDashboard(stores, ratings, s.now().UTC())
	dashboard.Degraded = degraded
	for _, insight := range dashboard.Insights {
		metrics.InsightsGenerated.WithLabelValues(string(insight.Type)).Inc()
	}

	if cacheable && !degraded {
		if err := s.cache.Set(ctx, version, dashboard); err != nil {
			s.logger.Warnw("dashboard cache write failed", "version", version, "error", err)
		}
	}
	return dashboard, nil
}

// Export renders the current snapshot as a workbook.
func (s *dashboardService) Export(ctx context.Context) ([]byte, error) {
	if s.renderer == nil {
		return nil, ErrExportUnavailable
	}
	dashboard, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(dashboard)
}

func (s *dashboardService) cacheVersion(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	version, err := s.cache.Version(ctx)
	if err != nil {
		metrics.DashboardCache.WithLabelValues("error").Inc()
		s.logger.Warnw("dashboard cache version lookup failed", "error", err)
		return 0, false
	}
	return version, true
}

// load fetches stores and ratings concurrently. Either failure discards both collections.
func (s *dashboardService) load(ctx context.Context) ([]sustainability.Store, []sustainability.Rating, error) {
	var (
		stores  []sustainability.Store
		ratings []sustainability.Rating
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stores, err = s.source.AllStores(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ratings, err = s.source.AllRatings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return []sustainability.Store{}, []sustainability.Rating{}, err
	}
	return stores, ratings, nil
}

// BuildDashboard computes every dashboard section from the full collections.
func BuildDashboard(stores []sustainability.Store, ratings []sustainability.Rating, generatedAt time.Time) *admindomain.Dashboard {
	return &admindomain.Dashboard{
		Overview:    sustainability.Overview(stores, ratings),
		Insights:    sustainability.GenerateInsights(stores, ratings),
		Performance: sustainability.PerformanceOverview(stores, ratings, PerformanceRows),
		Categories:  sustainability.BreakdownByCategory(stores),
		GeneratedAt: generatedAt,
	}
}
