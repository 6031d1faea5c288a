package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sngm3741/ecorating-services/api/internal/metrics"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

type ratingQueryService struct {
	repo RatingRepository
}

// NewRatingQueryService creates a new RatingQueryService.
func NewRatingQueryService(repo RatingRepository) RatingQueryService {
	return &ratingQueryService{repo: repo}
}

func (s *ratingQueryService) List(ctx context.Context, filter RatingFilter) ([]sustainability.Rating, error) {
	ratings, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	sustainability.SortRatingsNewest(ratings)
	return ratings, nil
}

func (s *ratingQueryService) Profile(ctx context.Context, email string) (sustainability.Profile, error) {
	ratings, err := s.repo.Find(ctx, RatingFilter{UserEmail: email})
	if err != nil {
		return sustainability.Profile{}, err
	}
	return sustainability.ProfileStats(ratings), nil
}

type ratingCommandService struct {
	stores  StoreRepository
	ratings RatingRepository
	cache   CacheInvalidator
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// NewRatingCommandService wires rating submission. cache may be nil.
func NewRatingCommandService(stores StoreRepository, ratings RatingRepository, cache CacheInvalidator, logger *zap.SugaredLogger) RatingCommandService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ratingCommandService{
		stores:  stores,
		ratings: ratings,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

// Submit validates the form before touching any repository. The overall rating is always
// derived from the five metrics.
func (s *ratingCommandService) Submit(ctx context.Context, cmd SubmitRatingCommand) (*sustainability.Rating, error) {
	values, err := sustainability.NewRatingMetrics(
		cmd.EnergyEfficiency,
		cmd.WasteManagement,
		cmd.ProductSourcing,
		cmd.CarbonFootprint,
		cmd.CommunityEngagement,
	)
	if err != nil {
		return nil, err
	}
	comment, err := sustainability.NormalizeComment(cmd.Comment)
	if err != nil {
		return nil, err
	}

	store, err := s.stores.FindByID(ctx, cmd.StoreID)
	if err != nil {
		return nil, err
	}

	rating := &sustainability.Rating{
		StoreID:       store.ID,
		StoreName:     store.Name,
		UserEmail:     cmd.Rater.Email,
		UserName:      cmd.Rater.Name,
		Metrics:       values,
		OverallRating: sustainability.OverallRating(values),
		Comment:       comment,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, err
	}
	metrics.RatingsSubmitted.Inc()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warnw("dashboard cache invalidation failed", "storeId", store.ID, "error", err)
		}
	}
	return rating, nil
}
