package sustainability

import (
	"fmt"
	"math"
)

// MaxInsights caps the number of insights returned for a dashboard load.
const MaxInsights = 6

const (
	lowEnergyThreshold     = 3.5
	goodWasteThreshold     = 4.0
	perceptionGapThreshold = 1.0
	lowCarbonThreshold     = 3.0
)

// InsightType classifies an advisory message.
type InsightType string

const (
	InsightWarning     InsightType = "warning"
	InsightOpportunity InsightType = "opportunity"
	InsightSuggestion  InsightType = "suggestion"
)

// Insight is a transient advisory message for the retailer dashboard.
type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Metric      string      `json:"metric"`
}

// GenerateInsights evaluates the fixed rule set against every store in input order and
// returns the first MaxInsights results. Later stores can be cut off by the truncation;
// results are not ranked by severity.
func GenerateInsights(stores []Store, ratings []Rating) []Insight {
	insights := make([]Insight, 0)
	if len(stores) == 0 {
		return insights
	}

	byStore := GroupByStore(ratings)
	for _, store := range stores {
		insights = append(insights, storeInsights(store, byStore[store.ID])...)
	}

	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	return insights
}

func storeInsights(store Store, ratings []Rating) []Insight {
	out := make([]Insight, 0, 4)

	if store.Metrics.EnergyEfficiency < lowEnergyThreshold {
		out = append(out, Insight{
			Type:        InsightWarning,
			Title:       fmt.Sprintf("%s: Low Energy Efficiency", store.Name),
			Description: "Consider implementing LED lighting, energy-efficient appliances, and renewable energy sources to improve this score.",
			Metric:      EnergyEfficiency.Label(),
		})
	}

	if store.Metrics.WasteManagement >= goodWasteThreshold {
		out = append(out, Insight{
			Type:        InsightOpportunity,
			Title:       fmt.Sprintf("%s: Excellent Waste Management", store.Name),
			Description: "Your waste management practices are exemplary. Share your methods with other stores to lead by example.",
			Metric:      WasteManagement.Label(),
		})
	}

	if agg, ok := Aggregate(ratings); ok {
		systemScore := store.SystemScore()
		if math.Abs(agg.Overall-systemScore) > perceptionGapThreshold {
			if agg.Overall > systemScore {
				out = append(out, Insight{
					Type:        InsightOpportunity,
					Title:       fmt.Sprintf("%s: Community Loves You!", store.Name),
					Description: "Customer ratings exceed system benchmarks. This positive perception is a competitive advantage.",
					Metric:      "Overall Performance",
				})
			} else {
				out = append(out, Insight{
					Type:        InsightSuggestion,
					Title:       fmt.Sprintf("%s: Perception Gap", store.Name),
					Description: "There's a gap between system ratings and customer perception. Improve customer communication about your sustainability efforts.",
					Metric:      "Communication",
				})
			}
		}
	}

	if store.Metrics.CarbonFootprint < lowCarbonThreshold {
		out = append(out, Insight{
			Type:        InsightSuggestion,
			Title:       fmt.Sprintf("%s: Carbon Reduction Opportunity", store.Name),
			Description: "Focus on local sourcing, optimize delivery routes, and consider carbon offset programs to improve your footprint.",
			Metric:      CarbonFootprint.Label(),
		})
	}

	return out
}
