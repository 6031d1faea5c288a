package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	adminapp "github.com/sngm3741/ecorating-services/api/internal/admin/application"
	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
	"github.com/sngm3741/ecorating-services/api/internal/public/application"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

func TestMapStoreDocument(t *testing.T) {
	id := primitive.NewObjectID()
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	doc := StoreDocument{
		ID:       id,
		Name:     "Green Grocer",
		Location: "Portland, OR",
		Category: "Grocery",
		Metrics: MetricsDocument{
			EnergyEfficiency:    3,
			WasteManagement:     4.2,
			ProductSourcing:     4,
			CarbonFootprint:     3,
			CommunityEngagement: 4,
		},
		CreatedAt: &created,
	}

	store := mapStoreDocument(doc)

	assert.Equal(t, id.Hex(), store.ID)
	assert.Equal(t, 4.2, store.Metrics.WasteManagement)
	assert.Equal(t, created, store.CreatedAt)
	assert.True(t, store.UpdatedAt.IsZero())
}

func TestMapRatingDocument_RoundTripsMetrics(t *testing.T) {
	storeID := primitive.NewObjectID()
	metrics := sustainability.Metrics{EnergyEfficiency: 1, WasteManagement: 2, ProductSourcing: 3, CarbonFootprint: 4, CommunityEngagement: 5}

	rating := mapRatingDocument(RatingDocument{
		ID:            primitive.NewObjectID(),
		StoreID:       storeID,
		UserEmail:     "alice@example.com",
		Metrics:       newMetricsDocument(metrics),
		OverallRating: 3,
	})

	assert.Equal(t, storeID.Hex(), rating.StoreID)
	assert.Equal(t, metrics, rating.Metrics)
}

func TestBuildRatingFilter(t *testing.T) {
	storeID := primitive.NewObjectID()

	filter, ok := buildRatingFilter(application.RatingFilter{StoreID: storeID.Hex(), UserEmail: " Alice@Example.com "})
	require.True(t, ok)
	assert.Equal(t, bson.M{"storeId": storeID, "userEmail": "alice@example.com"}, filter)

	filter, ok = buildRatingFilter(application.RatingFilter{})
	require.True(t, ok)
	assert.Empty(t, filter)

	_, ok = buildRatingFilter(application.RatingFilter{StoreID: "not-hex"})
	assert.False(t, ok)
}

func TestBuildAdminStoreFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, buildAdminStoreFilter(adminapp.StoreFilter{Category: "All"}))
	assert.Equal(t, bson.M{"category": "Grocery"}, buildAdminStoreFilter(adminapp.StoreFilter{Category: "Grocery"}))

	filter := buildAdminStoreFilter(adminapp.StoreFilter{Category: "Grocery", Keyword: "a.b"})
	clauses, ok := filter["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, clauses, 2)
	or := clauses[1]["$or"].(bson.A)
	assert.Equal(t, bson.M{"name": primitive.Regex{Pattern: `a\.b`, Options: "i"}}, or[0])
}

func TestMapAdminStore_RejectsCorruptDocument(t *testing.T) {
	_, err := mapAdminStore(StoreDocument{ID: primitive.NewObjectID(), Name: "X", Category: "Unknown"})
	assert.Error(t, err)

	store, err := mapAdminStore(StoreDocument{ID: primitive.NewObjectID(), Name: "X", Category: "Fashion"})
	require.NoError(t, err)
	assert.Equal(t, admindomain.Category("Fashion"), store.Category)
}

func TestBuildStoreDocument(t *testing.T) {
	metrics, err := admindomain.NewStoreMetrics(sustainability.Metrics{EnergyEfficiency: 2})
	require.NoError(t, err)

	doc, err := buildStoreDocument(&admindomain.Store{Name: "X", Category: "Fashion", Metrics: metrics})
	require.NoError(t, err)
	assert.Equal(t, 2.0, doc.Metrics.EnergyEfficiency)

	_, err = buildStoreDocument(nil)
	assert.Error(t, err)
}

func TestAdminStoreSkip(t *testing.T) {
	assert.Equal(t, int64(0), adminStoreSkip(0, 20))
	assert.Equal(t, int64(0), adminStoreSkip(1, 20))
	assert.Equal(t, int64(40), adminStoreSkip(3, 20))
	assert.Equal(t, int64((maxAdminStorePage-1)*200), adminStoreSkip(int(^uint(0)>>1), 200))
}
