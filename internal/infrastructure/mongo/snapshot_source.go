package mongo

import (
	"context"

	"github.com/sngm3741/ecorating-services/api/internal/public/application"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

// SnapshotSource exposes full collection reads for the retailer dashboard.
type SnapshotSource struct {
	stores  *StoreRepository
	ratings *RatingRepository
}

func NewSnapshotSource(stores *StoreRepository, ratings *RatingRepository) *SnapshotSource {
	return &SnapshotSource{stores: stores, ratings: ratings}
}

func (s *SnapshotSource) AllStores(ctx context.Context) ([]sustainability.Store, error) {
	return s.stores.FindAll(ctx)
}

func (s *SnapshotSource) AllRatings(ctx context.Context) ([]sustainability.Rating, error) {
	return s.ratings.Find(ctx, application.RatingFilter{})
}
