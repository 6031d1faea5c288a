package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/ecorating-services/api/internal/public/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

func rater(t *testing.T) domain.Rater {
	t.Helper()
	r, err := domain.NewRater("u1", "alice@example.com", "Alice")
	require.NoError(t, err)
	return r
}

func TestSubmitRating(t *testing.T) {
	ratings := &memoryRatings{}
	cache := &countingInvalidator{}
	svc := NewRatingCommandService(seededStores(), ratings, cache, nil)

	got, err := svc.Submit(context.Background(), SubmitRatingCommand{
		StoreID:             "s1",
		Rater:               rater(t),
		EnergyEfficiency:    5,
		WasteManagement:     4,
		ProductSourcing:     4,
		CarbonFootprint:     3,
		CommunityEngagement: 4,
		Comment:             "  solid  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "r-new", got.ID)
	assert.Equal(t, "Green Grocer", got.StoreName)
	assert.Equal(t, "alice@example.com", got.UserEmail)
	assert.InDelta(t, 4.0, got.OverallRating, 1e-9)
	assert.Equal(t, "solid", got.Comment)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Len(t, ratings.ratings, 1)
	assert.Equal(t, 1, cache.calls)
}

func TestSubmitRating_IncompleteNeverReachesRepository(t *testing.T) {
	ratings := &memoryRatings{}
	stores := seededStores()
	svc := NewRatingCommandService(stores, ratings, nil, nil)

	_, err := svc.Submit(context.Background(), SubmitRatingCommand{
		StoreID:             "missing",
		Rater:               rater(t),
		EnergyEfficiency:    5,
		WasteManagement:     0,
		ProductSourcing:     4,
		CarbonFootprint:     3,
		CommunityEngagement: 4,
	})

	assert.ErrorIs(t, err, sustainability.ErrIncompleteRating)
	assert.Empty(t, ratings.ratings)
}

func TestSubmitRating_UnknownStore(t *testing.T) {
	ratings := &memoryRatings{}
	svc := NewRatingCommandService(seededStores(), ratings, nil, nil)

	_, err := svc.Submit(context.Background(), SubmitRatingCommand{
		StoreID:             "missing",
		Rater:               rater(t),
		EnergyEfficiency:    1,
		WasteManagement:     1,
		ProductSourcing:     1,
		CarbonFootprint:     1,
		CommunityEngagement: 1,
	})

	assert.ErrorIs(t, err, sustainability.ErrStoreNotFound)
	assert.Empty(t, ratings.ratings)
}

func TestSubmitRating_InvalidationFailureStillSucceeds(t *testing.T) {
	cache := &countingInvalidator{err: errBoom}
	svc := NewRatingCommandService(seededStores(), &memoryRatings{}, cache, nil)

	_, err := svc.Submit(context.Background(), SubmitRatingCommand{
		StoreID:             "s2",
		Rater:               rater(t),
		EnergyEfficiency:    2,
		WasteManagement:     2,
		ProductSourcing:     2,
		CarbonFootprint:     2,
		CommunityEngagement: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, cache.calls)
}

func TestRatingQueryProfile(t *testing.T) {
	repo := &memoryRatings{ratings: []sustainability.Rating{
		{StoreName: "Green Grocer", UserEmail: "alice@example.com", OverallRating: 4},
		{StoreName: "Eco Threads", UserEmail: "alice@example.com", OverallRating: 3},
		{StoreName: "Eco Threads", UserEmail: "bob@example.com", OverallRating: 5},
	}}
	svc := NewRatingQueryService(repo)

	profile, err := svc.Profile(context.Background(), "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, 2, profile.TotalReviews)
	assert.Equal(t, 3.5, profile.AvgRating)
	assert.Equal(t, "Green Grocer", profile.TopStore)
	assert.Equal(t, "New User", profile.ContributionLevel)

	empty, err := svc.Profile(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Equal(t, "N/A", empty.TopStore)
}

func TestRatingQueryList_Filters(t *testing.T) {
	repo := &memoryRatings{ratings: []sustainability.Rating{
		{ID: "a", StoreID: "s1", UserEmail: "alice@example.com"},
		{ID: "b", StoreID: "s2", UserEmail: "alice@example.com"},
		{ID: "c", StoreID: "s1", UserEmail: "bob@example.com"},
	}}
	svc := NewRatingQueryService(repo)

	got, err := svc.List(context.Background(), RatingFilter{StoreID: "s1", UserEmail: "bob@example.com"})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}
