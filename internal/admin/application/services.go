package application

import (
	"context"

	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

// StoreRepository exposes admin operations on stores.
type StoreRepository interface {
	Find(ctx context.Context, filter StoreFilter, paging Paging) ([]admindomain.Store, error)
	FindByID(ctx context.Context, id string) (*admindomain.Store, error)
	Create(ctx context.Context, store *admindomain.Store) error
	Update(ctx context.Context, store *admindomain.Store) error
}

// SnapshotSource loads the full collections the dashboard is computed from.
type SnapshotSource interface {
	AllStores(ctx context.Context) ([]sustainability.Store, error)
	AllRatings(ctx context.Context) ([]sustainability.Rating, error)
}

// DashboardCache stores computed snapshots keyed by a version counter.
// Invalidate bumps the version so older snapshots are never served again.
type DashboardCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64) (*admindomain.Dashboard, bool, error)
	Set(ctx context.Context, version int64, dashboard *admindomain.Dashboard) error
	Invalidate(ctx context.Context) error
}

// WorkbookRenderer turns a dashboard snapshot into a spreadsheet file.
type WorkbookRenderer interface {
	Render(dashboard *admindomain.Dashboard) ([]byte, error)
}

// StoreFilter expresses admin search criteria.
type StoreFilter struct {
	Category string
	Keyword  string
	Limit    int
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
	Sort  string
}

// StoreService describes admin store use-cases.
type StoreService interface {
	List(ctx context.Context, filter StoreFilter, paging Paging) ([]admindomain.Store, error)
	Detail(ctx context.Context, id string) (*admindomain.Store, error)
	Create(ctx context.Context, cmd UpsertStoreCommand) (*admindomain.Store, error)
	Update(ctx context.Context, id string, cmd UpsertStoreCommand) (*admindomain.Store, error)
}

// DashboardService describes retailer dashboard use-cases.
type DashboardService interface {
	Snapshot(ctx context.Context) (*admindomain.Dashboard, error)
	Export(ctx context.Context) ([]byte, error)
}

// UpsertStoreCommand contains inputs for creating/updating stores.
type UpsertStoreCommand struct {
	Name        string
	Location    string
	Category    string
	Description string
	ImageURL    string
	Metrics     sustainability.Metrics
}
