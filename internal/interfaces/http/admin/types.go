package admin

import (
	"time"

	adminapp "github.com/sngm3741/ecorating-services/api/internal/admin/application"
	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

type adminStoreResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Location    string                 `json:"location,omitempty"`
	Category    string                 `json:"category"`
	Description string                 `json:"description,omitempty"`
	ImageURL    string                 `json:"imageUrl,omitempty"`
	Metrics     sustainability.Metrics `json:"metrics"`
	SystemScore float64                `json:"systemScore"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

type adminStoreListResponse struct {
	Items []adminStoreResponse `json:"items"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

type adminStoreCreateResponse struct {
	Store   adminStoreResponse `json:"store"`
	Created bool               `json:"created"`
}

// adminMetricsPayload は PATCH で一部のスコアだけ送れるようにポインタで受ける。
type adminMetricsPayload struct {
	EnergyEfficiency    *float64 `json:"energy_efficiency"`
	WasteManagement     *float64 `json:"waste_management"`
	ProductSourcing     *float64 `json:"product_sourcing"`
	CarbonFootprint     *float64 `json:"carbon_footprint"`
	CommunityEngagement *float64 `json:"community_engagement"`
}

type adminStoreRequest struct {
	Name        *string              `json:"name"`
	Location    *string              `json:"location"`
	Category    *string              `json:"category"`
	Description *string              `json:"description"`
	ImageURL    *string              `json:"imageUrl"`
	Metrics     *adminMetricsPayload `json:"metrics"`
}

func adminStoreDomainToResponse(store admindomain.Store) adminStoreResponse {
	snapshot := store.Snapshot()
	return adminStoreResponse{
		ID:          snapshot.ID,
		Name:        snapshot.Name,
		Location:    snapshot.Location,
		Category:    snapshot.Category,
		Description: snapshot.Description,
		ImageURL:    snapshot.ImageURL,
		Metrics:     snapshot.Metrics,
		SystemScore: sustainability.Round1(snapshot.SystemScore()),
		CreatedAt:   snapshot.CreatedAt,
		UpdatedAt:   snapshot.UpdatedAt,
	}
}

// applyTo overlays the fields present in the request onto base.
func (req adminStoreRequest) applyTo(base adminapp.UpsertStoreCommand) adminapp.UpsertStoreCommand {
	cmd := base
	if req.Name != nil {
		cmd.Name = *req.Name
	}
	if req.Location != nil {
		cmd.Location = *req.Location
	}
	if req.Category != nil {
		cmd.Category = *req.Category
	}
	if req.Description != nil {
		cmd.Description = *req.Description
	}
	if req.ImageURL != nil {
		cmd.ImageURL = *req.ImageURL
	}
	if m := req.Metrics; m != nil {
		overlay(&cmd.Metrics.EnergyEfficiency, m.EnergyEfficiency)
		overlay(&cmd.Metrics.WasteManagement, m.WasteManagement)
		overlay(&cmd.Metrics.ProductSourcing, m.ProductSourcing)
		overlay(&cmd.Metrics.CarbonFootprint, m.CarbonFootprint)
		overlay(&cmd.Metrics.CommunityEngagement, m.CommunityEngagement)
	}
	return cmd
}

func overlay(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// commandFromStore は既存店舗を PATCH のベースとなるコマンドに戻す。
func commandFromStore(store admindomain.Store) adminapp.UpsertStoreCommand {
	snapshot := store.Snapshot()
	return adminapp.UpsertStoreCommand{
		Name:        snapshot.Name,
		Location:    snapshot.Location,
		Category:    snapshot.Category,
		Description: snapshot.Description,
		ImageURL:    snapshot.ImageURL,
		Metrics:     snapshot.Metrics,
	}
}
