package public

import (
	"time"

	publicdomain "github.com/sngm3741/ecorating-services/api/internal/public/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

type storeResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Location    string                 `json:"location,omitempty"`
	Category    string                 `json:"category"`
	Description string                 `json:"description,omitempty"`
	ImageURL    string                 `json:"imageUrl,omitempty"`
	Metrics     sustainability.Metrics `json:"metrics"`
	SystemScore float64                `json:"systemScore"`
	Badge       string                 `json:"badge"`
	CreatedDate *time.Time             `json:"created_date,omitempty"`
	UpdatedDate *time.Time             `json:"updated_date,omitempty"`
}

type storeListResponse struct {
	Items      []storeResponse             `json:"items"`
	Total      int                         `json:"total"`
	Stats      sustainability.CatalogStats `json:"stats"`
	Categories []string                    `json:"categories"`
}

type storeDetailResponse struct {
	Store      storeResponse                     `json:"store"`
	Community  *communityResponse                `json:"community,omitempty"`
	Comparison []sustainability.MetricComparison `json:"comparison"`
}

type communityResponse struct {
	Averages     sustainability.Metrics `json:"averages"`
	Overall      float64                `json:"overall"`
	TotalReviews int                    `json:"totalReviews"`
}

type ratingResponse struct {
	ID            string                 `json:"id"`
	StoreID       string                 `json:"store_id"`
	StoreName     string                 `json:"store_name"`
	UserEmail     string                 `json:"user_email"`
	UserName      string                 `json:"user_name"`
	Metrics       sustainability.Metrics `json:"metrics"`
	OverallRating float64                `json:"overall_rating"`
	Comment       string                 `json:"comment,omitempty"`
	CreatedDate   time.Time              `json:"created_date"`
}

type ratingListResponse struct {
	Items []ratingResponse `json:"items"`
	Total int              `json:"total"`
}

// ratingCreateRequest はレーティング投稿フォーム。overall_rating はサーバー側で算出するため受け付けない。
type ratingCreateRequest struct {
	EnergyEfficiency    int    `json:"energy_efficiency"`
	WasteManagement     int    `json:"waste_management"`
	ProductSourcing     int    `json:"product_sourcing"`
	CarbonFootprint     int    `json:"carbon_footprint"`
	CommunityEngagement int    `json:"community_engagement"`
	Comment             string `json:"comment"`
}

type explanationResponse struct {
	StoreID     string `json:"storeId"`
	Explanation string `json:"explanation"`
	Generated   bool   `json:"generated"`
}

func buildStoreResponse(summary publicdomain.StoreSummary) storeResponse {
	store := summary.Store
	return storeResponse{
		ID:          store.ID,
		Name:        store.Name,
		Location:    store.Location,
		Category:    store.Category,
		Description: store.Description,
		ImageURL:    store.ImageURL,
		Metrics:     store.Metrics,
		SystemScore: sustainability.Round1(summary.SystemScore),
		Badge:       summary.Badge,
		CreatedDate: timePtr(store.CreatedAt),
		UpdatedDate: timePtr(store.UpdatedAt),
	}
}

func buildStoreDetailResponse(detail publicdomain.StoreDetail) storeDetailResponse {
	resp := storeDetailResponse{
		Store:      buildStoreResponse(detail.StoreSummary),
		Comparison: detail.Comparison,
	}
	if detail.Community != nil {
		resp.Community = &communityResponse{
			Averages:     detail.Community.Averages,
			Overall:      sustainability.Round1(detail.Community.Overall),
			TotalReviews: detail.Community.TotalReviews,
		}
	}
	return resp
}

func buildRatingResponse(r sustainability.Rating) ratingResponse {
	return ratingResponse{
		ID:            r.ID,
		StoreID:       r.StoreID,
		StoreName:     r.StoreName,
		UserEmail:     r.UserEmail,
		UserName:      r.UserName,
		Metrics:       r.Metrics,
		OverallRating: r.OverallRating,
		Comment:       r.Comment,
		CreatedDate:   r.CreatedAt,
	}
}

func buildRatingListResponse(ratings []sustainability.Rating) ratingListResponse {
	items := make([]ratingResponse, 0, len(ratings))
	for _, r := range ratings {
		items = append(items, buildRatingResponse(r))
	}
	return ratingListResponse{Items: items, Total: len(items)}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
