package sustainability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeWith(id, category string, score float64) Store {
	return Store{
		ID:       id,
		Name:     "Store " + id,
		Category: category,
		Metrics: Metrics{
			EnergyEfficiency:    score,
			WasteManagement:     score,
			ProductSourcing:     score,
			CarbonFootprint:     score,
			CommunityEngagement: score,
		},
	}
}

func TestBreakdownByCategory(t *testing.T) {
	stores := []Store{
		storeWith("1", "Grocery", 4),
		storeWith("2", "Fashion", 3),
		storeWith("3", "Grocery", 3),
		storeWith("4", "grocery", 1),
	}

	rows := BreakdownByCategory(stores)

	require.Len(t, rows, 3)
	assert.Equal(t, CategorySummary{Name: "Grocery", Stores: 2, AvgScore: 3.5}, rows[0])
	assert.Equal(t, CategorySummary{Name: "Fashion", Stores: 1, AvgScore: 3}, rows[1])
	assert.Equal(t, CategorySummary{Name: "grocery", Stores: 1, AvgScore: 1}, rows[2])
}

func TestBreakdownByCategory_SingleStoreRoundsMean(t *testing.T) {
	rows := BreakdownByCategory([]Store{greenGrocer()})

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Stores)
	assert.Equal(t, Round1(greenGrocer().SystemScore()), rows[0].AvgScore)
	assert.Equal(t, 3.6, rows[0].AvgScore)
}

func TestBreakdownByCategory_Empty(t *testing.T) {
	rows := BreakdownByCategory(nil)

	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestOverview(t *testing.T) {
	stores := []Store{storeWith("1", "Grocery", 4), storeWith("2", "Fashion", 2)}
	ratings := []Rating{rating("1", 5, 5, 5, 5, 5), rating("2", 3, 3, 3, 3, 3)}

	stats := Overview(stores, ratings)

	assert.Equal(t, 2, stats.TotalStores)
	assert.Equal(t, 2, stats.TotalReviews)
	assert.InDelta(t, 3.0, stats.AvgSystemRating, 1e-9)
	assert.InDelta(t, 4.0, stats.AvgCommunityRating, 1e-9)
}

func TestOverview_Empty(t *testing.T) {
	assert.Equal(t, OverviewStats{}, Overview(nil, nil))
}

func TestPerformanceOverview(t *testing.T) {
	stores := []Store{
		storeWith("1", "Grocery", 4),
		storeWith("2", "Grocery", 3),
		storeWith("3", "Grocery", 2),
	}
	ratings := []Rating{{StoreID: "1"}, {StoreID: "1"}, {StoreID: "3"}}

	rows := PerformanceOverview(stores, ratings, 2)

	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].StoreID)
	assert.Equal(t, 2, rows[0].TotalReviews)
	assert.Equal(t, 0, rows[1].TotalReviews)
	assert.Len(t, PerformanceOverview(stores, ratings, 0), 3)
}

func TestCatalog(t *testing.T) {
	stats := Catalog([]Store{
		storeWith("1", "Grocery", 4.6),
		storeWith("2", "Fashion", 3),
		storeWith("3", "Grocery", 4.5),
	})

	assert.Equal(t, 3, stats.TotalStores)
	assert.Equal(t, 2, stats.Categories)
	assert.Equal(t, 2, stats.EcoLeaders)
	assert.Equal(t, 4.0, stats.AvgRating)
	assert.Equal(t, CatalogStats{}, Catalog(nil))
}

func TestScoreBadge(t *testing.T) {
	cases := map[float64]string{
		5:   "Excellent",
		4.5: "Excellent",
		4.4: "Good",
		3.5: "Good",
		3:   "Fair",
		2.5: "Fair",
		2.4: "Needs Improvement",
		0:   "Needs Improvement",
	}
	for score, want := range cases {
		assert.Equal(t, want, ScoreBadge(score), "score %v", score)
	}
}

func TestCompare(t *testing.T) {
	store := greenGrocer()
	agg, ok := Aggregate([]Rating{rating("s1", 1, 2, 3, 4, 5)})

	rows := Compare(store, agg, ok)

	require.Len(t, rows, 5)
	assert.Equal(t, "Energy", rows[0].Name)
	assert.Equal(t, 3.0, rows[0].System)
	assert.Equal(t, 1.0, rows[0].Community)
	assert.Equal(t, "Community", rows[4].Name)
	assert.Equal(t, 5.0, rows[4].Community)

	empty := Compare(store, RatingAggregate{}, false)
	for _, row := range empty {
		assert.Zero(t, row.Community)
	}
}

func TestProfileStats(t *testing.T) {
	empty := ProfileStats(nil)
	assert.Equal(t, Profile{TopStore: "N/A", ContributionLevel: "New User"}, empty)

	mine := make([]Rating, 0, 6)
	for i := 0; i < 2; i++ {
		mine = append(mine, Rating{StoreName: "Green Grocer", OverallRating: 4})
	}
	for i := 0; i < 3; i++ {
		mine = append(mine, Rating{StoreName: "Eco Mart", OverallRating: 3})
	}
	mine = append(mine, Rating{OverallRating: 5})

	p := ProfileStats(mine)

	assert.Equal(t, 6, p.TotalReviews)
	assert.Equal(t, 3.7, p.AvgRating)
	assert.Equal(t, "Eco Mart", p.TopStore)
	assert.Equal(t, "Active Contributor", p.ContributionLevel)
}

func TestContributionLevel(t *testing.T) {
	assert.Equal(t, "New User", contributionLevel(4))
	assert.Equal(t, "Active Contributor", contributionLevel(5))
	assert.Equal(t, "Eco Advocate", contributionLevel(10))
	assert.Equal(t, "Sustainability Champion", contributionLevel(20))
}
