package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

func TestRender(t *testing.T) {
	d := &admindomain.Dashboard{
		Overview: sustainability.OverviewStats{TotalStores: 2, AvgSystemRating: 3.64, TotalReviews: 4, AvgCommunityRating: 4.25},
		Insights: []sustainability.Insight{{
			Type:        sustainability.InsightWarning,
			Title:       "Green Grocer: Low Energy Efficiency",
			Description: "desc",
			Metric:      "Energy Efficiency",
		}},
		Performance: []sustainability.StorePerformance{{Name: "Green Grocer", Category: "Grocery", SystemScore: 3.6, TotalReviews: 4}},
		Categories:  []sustainability.CategorySummary{{Name: "Grocery", Stores: 2, AvgScore: 3.6}},
		GeneratedAt: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
	}

	out, err := NewWorkbookRenderer().Render(d)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetOverview, SheetInsights, SheetCategories}, f.GetSheetList())

	overview, err := f.GetRows(SheetOverview)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total Stores", "2"}, overview[1])
	assert.Equal(t, []string{"Avg System Rating", "3.6"}, overview[2])
	assert.Equal(t, []string{"Generated At", "2025-03-04 05:06:07"}, overview[5])
	assert.Equal(t, []string{"Green Grocer", "Grocery", "3.6", "4"}, overview[len(overview)-1])

	insights, err := f.GetRows(SheetInsights)
	require.NoError(t, err)
	require.Len(t, insights, 2)
	assert.Equal(t, "warning", insights[1][0])

	categories, err := f.GetRows(SheetCategories)
	require.NoError(t, err)
	assert.Equal(t, []string{"Grocery", "2", "3.6"}, categories[1])
}

func TestRender_Nil(t *testing.T) {
	_, err := NewWorkbookRenderer().Render(nil)

	assert.Error(t, err)
}
