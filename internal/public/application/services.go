package application

import (
	"context"

	"github.com/sngm3741/ecorating-services/api/internal/public/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

// StoreRepository は Public コンテキストで店舗を読み取るためのポート。
type StoreRepository interface {
	FindAll(ctx context.Context) ([]sustainability.Store, error)
	FindByID(ctx context.Context, id string) (*sustainability.Store, error)
}

// RatingRepository handles rating reads/writes. Ratings are append-only.
type RatingRepository interface {
	Find(ctx context.Context, filter RatingFilter) ([]sustainability.Rating, error)
	Create(ctx context.Context, rating *sustainability.Rating) error
}

// TextGenerator is the external LLM endpoint. The returned text is opaque.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// CacheInvalidator drops derived views after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// StoreFilter expresses search criteria for stores.
type StoreFilter struct {
	Keyword  string
	Category string
}

// RatingFilter expresses search criteria for ratings. Empty fields match everything.
type RatingFilter struct {
	StoreID   string
	UserEmail string
}

// Paging controls ordering.
type Paging struct {
	Sort string
}

// StoreQueryService は店舗に関するユースケースを提供するリーダーモデル。
type StoreQueryService interface {
	List(ctx context.Context, filter StoreFilter, paging Paging) (*domain.Catalogue, error)
	Detail(ctx context.Context, id string) (*domain.StoreDetail, error)
	Ratings(ctx context.Context, storeID string) ([]sustainability.Rating, error)
}

// RatingQueryService は評価の参照ユースケースを提供する。
type RatingQueryService interface {
	List(ctx context.Context, filter RatingFilter) ([]sustainability.Rating, error)
	Profile(ctx context.Context, email string) (sustainability.Profile, error)
}

// RatingCommandService handles writing use-cases.
type RatingCommandService interface {
	Submit(ctx context.Context, cmd SubmitRatingCommand) (*sustainability.Rating, error)
}

// ExplanationService produces the AI narrative for a store page.
type ExplanationService interface {
	Explain(ctx context.Context, storeID string) (*domain.Explanation, error)
}

// SubmitRatingCommand captures the rating form. Metric values are star counts; 0 means unrated.
type SubmitRatingCommand struct {
	StoreID             string
	Rater               domain.Rater
	EnergyEfficiency    int
	WasteManagement     int
	ProductSourcing     int
	CarbonFootprint     int
	CommunityEngagement int
	Comment             string
}
