package sustainability

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCommentRunes limits free-text rating comments.
const MaxCommentRunes = 2000

var (
	// ErrIncompleteRating is returned when any metric was left unrated (0).
	ErrIncompleteRating = errors.New("please rate all sustainability metrics before submitting")
	// ErrMetricOutOfRange is returned when a submitted metric is outside 1..5.
	ErrMetricOutOfRange = errors.New("metric ratings must be between 1 and 5")
	// ErrCommentTooLong is returned when a comment exceeds MaxCommentRunes.
	ErrCommentTooLong = fmt.Errorf("comment must be %d characters or fewer", MaxCommentRunes)
	// ErrStoreNotFound is returned by repositories when the store does not exist.
	ErrStoreNotFound = errors.New("store not found")
)

// MetricKey identifies one of the five sustainability dimensions.
type MetricKey string

const (
	EnergyEfficiency    MetricKey = "energy_efficiency"
	WasteManagement     MetricKey = "waste_management"
	ProductSourcing     MetricKey = "product_sourcing"
	CarbonFootprint     MetricKey = "carbon_footprint"
	CommunityEngagement MetricKey = "community_engagement"
)

// MetricKeys lists the dimensions in display order.
var MetricKeys = []MetricKey{
	EnergyEfficiency,
	WasteManagement,
	ProductSourcing,
	CarbonFootprint,
	CommunityEngagement,
}

var metricLabels = map[MetricKey]string{
	EnergyEfficiency:    "Energy Efficiency",
	WasteManagement:     "Waste Management",
	ProductSourcing:     "Product Sourcing",
	CarbonFootprint:     "Carbon Footprint",
	CommunityEngagement: "Community Engagement",
}

var metricShortNames = map[MetricKey]string{
	EnergyEfficiency:    "Energy",
	WasteManagement:     "Waste",
	ProductSourcing:     "Sourcing",
	CarbonFootprint:     "Carbon",
	CommunityEngagement: "Community",
}

// Label returns the human readable name of the metric.
func (k MetricKey) Label() string {
	return metricLabels[k]
}

// ShortName returns the compact chart label of the metric.
func (k MetricKey) ShortName() string {
	return metricShortNames[k]
}

// Metrics holds the five sustainability scores on a 0-5 scale.
type Metrics struct {
	EnergyEfficiency    float64 `json:"energy_efficiency"`
	WasteManagement     float64 `json:"waste_management"`
	ProductSourcing     float64 `json:"product_sourcing"`
	CarbonFootprint     float64 `json:"carbon_footprint"`
	CommunityEngagement float64 `json:"community_engagement"`
}

// Value returns the score for the given key.
func (m Metrics) Value(key MetricKey) float64 {
	switch key {
	case EnergyEfficiency:
		return m.EnergyEfficiency
	case WasteManagement:
		return m.WasteManagement
	case ProductSourcing:
		return m.ProductSourcing
	case CarbonFootprint:
		return m.CarbonFootprint
	case CommunityEngagement:
		return m.CommunityEngagement
	}
	return 0
}

// Mean is the unweighted mean of the five scores.
func (m Metrics) Mean() float64 {
	return (m.EnergyEfficiency +
		m.WasteManagement +
		m.ProductSourcing +
		m.CarbonFootprint +
		m.CommunityEngagement) / 5
}

func (m Metrics) add(o Metrics) Metrics {
	return Metrics{
		EnergyEfficiency:    m.EnergyEfficiency + o.EnergyEfficiency,
		WasteManagement:     m.WasteManagement + o.WasteManagement,
		ProductSourcing:     m.ProductSourcing + o.ProductSourcing,
		CarbonFootprint:     m.CarbonFootprint + o.CarbonFootprint,
		CommunityEngagement: m.CommunityEngagement + o.CommunityEngagement,
	}
}

func (m Metrics) div(n float64) Metrics {
	return Metrics{
		EnergyEfficiency:    m.EnergyEfficiency / n,
		WasteManagement:     m.WasteManagement / n,
		ProductSourcing:     m.ProductSourcing / n,
		CarbonFootprint:     m.CarbonFootprint / n,
		CommunityEngagement: m.CommunityEngagement / n,
	}
}

// Store is a read-only snapshot of a store and its operator-assigned scores.
type Store struct {
	ID          string
	Name        string
	Location    string
	Category    string
	Description string
	ImageURL    string
	Metrics     Metrics
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SystemScore is the mean of the store's five system metrics.
func (s Store) SystemScore() float64 {
	return s.Metrics.Mean()
}

// Rating is a single immutable community submission.
type Rating struct {
	ID            string
	StoreID       string
	StoreName     string
	UserEmail     string
	UserName      string
	Metrics       Metrics
	OverallRating float64
	Comment       string
	CreatedAt     time.Time
}

// NewRatingMetrics validates star inputs from the rating form. Every metric must be rated 1..5.
func NewRatingMetrics(energy, waste, sourcing, carbon, community int) (Metrics, error) {
	values := []int{energy, waste, sourcing, carbon, community}
	for _, v := range values {
		if v == 0 {
			return Metrics{}, ErrIncompleteRating
		}
	}
	for _, v := range values {
		if v < 1 || v > 5 {
			return Metrics{}, ErrMetricOutOfRange
		}
	}
	return Metrics{
		EnergyEfficiency:    float64(energy),
		WasteManagement:     float64(waste),
		ProductSourcing:     float64(sourcing),
		CarbonFootprint:     float64(carbon),
		CommunityEngagement: float64(community),
	}, nil
}

// OverallRating derives the overall score of a submission.
func OverallRating(m Metrics) float64 {
	return m.Mean()
}

// NormalizeComment trims the comment and enforces the length limit.
func NormalizeComment(comment string) (string, error) {
	trimmed := strings.TrimSpace(comment)
	if utf8.RuneCountInString(trimmed) > MaxCommentRunes {
		return "", ErrCommentTooLong
	}
	return trimmed, nil
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
