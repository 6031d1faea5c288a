package domain

import (
	"time"

	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

// Dashboard is the retailer dashboard snapshot.
// Degraded is set when a collection failed to load and was replaced by an empty one.
type Dashboard struct {
	Overview    sustainability.OverviewStats      `json:"overview"`
	Insights    []sustainability.Insight          `json:"insights"`
	Performance []sustainability.StorePerformance `json:"performance"`
	Categories  []sustainability.CategorySummary  `json:"categories"`
	Degraded    bool                              `json:"degraded"`
	GeneratedAt time.Time                         `json:"generatedAt"`
}
