package domain

import (
	"errors"
	"time"

	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

// Store aggregates data required for admin operations.
type Store struct {
	ID          string
	Name        StoreName
	Location    Location
	Category    Category
	Description Description
	ImageURL    URL
	Metrics     StoreMetrics
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StoreMetrics holds the five operator-assigned scores.
type StoreMetrics struct {
	EnergyEfficiency    Score
	WasteManagement     Score
	ProductSourcing     Score
	CarbonFootprint     Score
	CommunityEngagement Score
}

// NewStoreMetrics validates every score against the 0-5 scale.
func NewStoreMetrics(m sustainability.Metrics) (StoreMetrics, error) {
	var (
		out StoreMetrics
		err error
	)
	if out.EnergyEfficiency, err = NewScore(string(sustainability.EnergyEfficiency), m.EnergyEfficiency); err != nil {
		return StoreMetrics{}, err
	}
	if out.WasteManagement, err = NewScore(string(sustainability.WasteManagement), m.WasteManagement); err != nil {
		return StoreMetrics{}, err
	}
	if out.ProductSourcing, err = NewScore(string(sustainability.ProductSourcing), m.ProductSourcing); err != nil {
		return StoreMetrics{}, err
	}
	if out.CarbonFootprint, err = NewScore(string(sustainability.CarbonFootprint), m.CarbonFootprint); err != nil {
		return StoreMetrics{}, err
	}
	if out.CommunityEngagement, err = NewScore(string(sustainability.CommunityEngagement), m.CommunityEngagement); err != nil {
		return StoreMetrics{}, err
	}
	return out, nil
}

// Values unwraps the scores.
func (m StoreMetrics) Values() sustainability.Metrics {
	return sustainability.Metrics{
		EnergyEfficiency:    m.EnergyEfficiency.Float64(),
		WasteManagement:     m.WasteManagement.Float64(),
		ProductSourcing:     m.ProductSourcing.Float64(),
		CarbonFootprint:     m.CarbonFootprint.Float64(),
		CommunityEngagement: m.CommunityEngagement.Float64(),
	}
}

// Snapshot converts the aggregate into the read-only value used by the scoring core.
func (s Store) Snapshot() sustainability.Store {
	return sustainability.Store{
		ID:          s.ID,
		Name:        s.Name.String(),
		Location:    s.Location.String(),
		Category:    s.Category.String(),
		Description: s.Description.String(),
		ImageURL:    s.ImageURL.String(),
		Metrics:     s.Metrics.Values(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ErrStoreExists is returned when a store with the same name and location is already registered.
var ErrStoreExists = errors.New("store already exists")
