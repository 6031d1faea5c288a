package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sngm3741/ecorating-services/api/internal/public/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

// storeQueryService is the concrete implementation of StoreQueryService.
type storeQueryService struct {
	stores  StoreRepository
	ratings RatingRepository
}

// NewStoreQueryService creates a new store query service.
func NewStoreQueryService(stores StoreRepository, ratings RatingRepository) StoreQueryService {
	return &storeQueryService{stores: stores, ratings: ratings}
}

// List filters and sorts in memory. Catalogue stats always cover the whole collection.
func (s *storeQueryService) List(ctx context.Context, filter StoreFilter, paging Paging) (*domain.Catalogue, error) {
	all, err := s.stores.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := sustainability.FilterStores(all, sustainability.StoreQuery{
		Search:   filter.Keyword,
		Category: filter.Category,
	})
	sustainability.SortStores(matched, paging.Sort)

	summaries := make([]domain.StoreSummary, 0, len(matched))
	for _, store := range matched {
		summaries = append(summaries, domain.NewStoreSummary(store))
	}

	return &domain.Catalogue{
		Stores:     summaries,
		Stats:      sustainability.Catalog(all),
		Categories: categoryOptions(all),
	}, nil
}

// Detail loads the store and its ratings concurrently.
func (s *storeQueryService) Detail(ctx context.Context, id string) (*domain.StoreDetail, error) {
	var (
		store   *sustainability.Store
		ratings []sustainability.Rating
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		store, err = s.stores.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		ratings, err = s.ratings.Find(gctx, RatingFilter{StoreID: id})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	detail := &domain.StoreDetail{StoreSummary: domain.NewStoreSummary(*store)}
	agg, ok := sustainability.Aggregate(ratings)
	if ok {
		detail.Community = &agg
	}
	detail.Comparison = sustainability.Compare(*store, agg, ok)
	return detail, nil
}

func (s *storeQueryService) Ratings(ctx context.Context, storeID string) ([]sustainability.Rating, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}
	ratings, err := s.ratings.Find(ctx, RatingFilter{StoreID: storeID})
	if err != nil {
		return nil, err
	}
	sustainability.SortRatingsNewest(ratings)
	return ratings, nil
}

// categoryOptions lists "All" followed by the distinct categories in first-seen order.
func categoryOptions(stores []sustainability.Store) []string {
	options := []string{sustainability.AllCategories}
	seen := make(map[string]struct{})
	for _, store := range stores {
		if store.Category == "" {
			continue
		}
		if _, ok := seen[store.Category]; ok {
			continue
		}
		seen[store.Category] = struct{}{}
		options = append(options, store.Category)
	}
	return options
}
