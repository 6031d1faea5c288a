package public

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/ecorating-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/ecorating-services/api/internal/public/application"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

type memoryStores struct {
	stores []sustainability.Store
}

func (m *memoryStores) FindAll(context.Context) ([]sustainability.Store, error) {
	return append([]sustainability.Store(nil), m.stores...), nil
}

func (m *memoryStores) FindByID(_ context.Context, id string) (*sustainability.Store, error) {
	for _, s := range m.stores {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, sustainability.ErrStoreNotFound
}

type memoryRatings struct {
	mu      sync.Mutex
	ratings []sustainability.Rating
}

func (m *memoryRatings) Find(_ context.Context, filter publicapp.RatingFilter) ([]sustainability.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sustainability.Rating, 0)
	for _, r := range m.ratings {
		if filter.StoreID != "" && r.StoreID != filter.StoreID {
			continue
		}
		if filter.UserEmail != "" && r.UserEmail != filter.UserEmail {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryRatings) Create(_ context.Context, r *sustainability.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = "r-new"
	m.ratings = append(m.ratings, *r)
	return nil
}

func testStores() []sustainability.Store {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []sustainability.Store{
		{
			ID: "s1", Name: "Green Grocer", Location: "Portland", Category: "Grocery", CreatedAt: created,
			Metrics: sustainability.Metrics{EnergyEfficiency: 3, WasteManagement: 4.2, ProductSourcing: 4, CarbonFootprint: 3, CommunityEngagement: 4},
		},
		{
			ID: "s2", Name: "Thread Lab", Location: "Austin", Category: "Fashion", CreatedAt: created.Add(time.Hour),
			Metrics: sustainability.Metrics{EnergyEfficiency: 5, WasteManagement: 5, ProductSourcing: 4, CarbonFootprint: 4, CommunityEngagement: 5},
		},
	}
}

// testAuth は X-Test-User / X-Test-Email ヘッダーをそのまま認証済みユーザーとして扱う。
func testAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test-User") == "" {
			common.WriteError(nil, w, http.StatusUnauthorized, "missing token")
			return
		}
		user := common.AuthenticatedUser{ID: r.Header.Get("X-Test-User"), Email: r.Header.Get("X-Test-Email")}
		next.ServeHTTP(w, r.WithContext(common.ContextWithUser(r.Context(), user)))
	})
}

func newTestRouter(ratings *memoryRatings) http.Handler {
	stores := &memoryStores{stores: testStores()}
	storeQueries := publicapp.NewStoreQueryService(stores, ratings)
	h := NewHandler(Config{
		StoreQueries:   storeQueries,
		RatingQueries:  publicapp.NewRatingQueryService(ratings),
		RatingCommands: publicapp.NewRatingCommandService(stores, ratings, nil, nil),
		Explanations:   publicapp.NewExplanationService(storeQueries, nil, time.Second, nil),
	})
	r := chi.NewRouter()
	h.Register(r, testAuth)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

var alice = map[string]string{"X-Test-User": "u1", "X-Test-Email": "Alice@Example.com"}

const validRating = `{"energy_efficiency":5,"waste_management":4,"product_sourcing":4,"carbon_footprint":3,"community_engagement":4,"comment":"  great  ","overall_rating":1}`

func TestStoreList(t *testing.T) {
	router := newTestRouter(&memoryRatings{})

	rec, body := do(t, router, http.MethodGet, "/stores?q=port", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "Green Grocer", first["name"])
	assert.Equal(t, 3.6, first["systemScore"])
	assert.Equal(t, "Good", first["badge"])

	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["totalStores"])
	assert.Equal(t, []any{"All", "Grocery", "Fashion"}, body["categories"])
}

func TestStoreList_CategoryAndSort(t *testing.T) {
	router := newTestRouter(&memoryRatings{})

	_, body := do(t, router, http.MethodGet, "/stores?category=All&sort=score", "", nil)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Thread Lab", items[0].(map[string]any)["name"])

	_, body = do(t, router, http.MethodGet, "/stores?category=grocery", "", nil)
	assert.Empty(t, body["items"])
}

func TestStoreDetail(t *testing.T) {
	ratings := &memoryRatings{}
	router := newTestRouter(ratings)

	rec, body := do(t, router, http.MethodGet, "/stores/s1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, body, "community")
	assert.Len(t, body["comparison"], 5)

	rec, _ = do(t, router, http.MethodGet, "/stores/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRatingCreate(t *testing.T) {
	ratings := &memoryRatings{}
	router := newTestRouter(ratings)

	rec, _ := do(t, router, http.MethodPost, "/stores/s1/ratings", validRating, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := do(t, router, http.MethodPost, "/stores/s1/ratings", validRating, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "alice@example.com", body["user_email"])
	assert.Equal(t, "Green Grocer", body["store_name"])
	assert.Equal(t, 4.0, body["overall_rating"])
	assert.Equal(t, "great", body["comment"])

	rec, body = do(t, router, http.MethodGet, "/stores/s1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	community := body["community"].(map[string]any)
	assert.Equal(t, float64(1), community["totalReviews"])
}

func TestRatingCreate_Rejections(t *testing.T) {
	ratings := &memoryRatings{}
	router := newTestRouter(ratings)

	incomplete := `{"energy_efficiency":5,"waste_management":0,"product_sourcing":4,"carbon_footprint":3,"community_engagement":4}`
	rec, body := do(t, router, http.MethodPost, "/stores/s1/ratings", incomplete, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, sustainability.ErrIncompleteRating.Error(), body["error"])

	rec, _ = do(t, router, http.MethodPost, "/stores/s1/ratings", `{`, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, router, http.MethodPost, "/stores/nope/ratings", validRating, alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, router, http.MethodPost, "/stores/s1/ratings", validRating, map[string]string{"X-Test-User": "u2"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Empty(t, ratings.ratings)
}

func TestRatingList_FiltersAndProfile(t *testing.T) {
	now := time.Now().UTC()
	ratings := &memoryRatings{ratings: []sustainability.Rating{
		{ID: "r1", StoreID: "s1", StoreName: "Green Grocer", UserEmail: "alice@example.com", OverallRating: 4, CreatedAt: now.Add(-time.Hour)},
		{ID: "r2", StoreID: "s2", StoreName: "Thread Lab", UserEmail: "bob@example.com", OverallRating: 3, CreatedAt: now},
		{ID: "r3", StoreID: "s2", StoreName: "Thread Lab", UserEmail: "alice@example.com", OverallRating: 5, CreatedAt: now.Add(time.Minute)},
	}}
	router := newTestRouter(ratings)

	_, body := do(t, router, http.MethodGet, "/ratings?userEmail=ALICE@example.com", "", nil)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "r3", items[0].(map[string]any)["id"])

	_, body = do(t, router, http.MethodGet, "/stores/s2/ratings", "", nil)
	assert.Equal(t, float64(2), body["total"])

	_, body = do(t, router, http.MethodGet, "/me/ratings", "", alice)
	assert.Equal(t, float64(2), body["total"])

	rec, body := do(t, router, http.MethodGet, "/me/profile", "", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := body["profile"].(map[string]any)
	assert.Equal(t, float64(2), profile["totalReviews"])
	assert.Equal(t, 4.5, profile["avgRating"])
	assert.Equal(t, "New User", profile["contributionLevel"])
}

func TestExplanation_FallsBackWithoutGenerator(t *testing.T) {
	router := newTestRouter(&memoryRatings{})

	rec, body := do(t, router, http.MethodPost, "/stores/s1/explanation", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sustainability.FallbackExplanation, body["explanation"])
	assert.Equal(t, false, body["generated"])

	rec, _ = do(t, router, http.MethodPost, "/stores/missing/explanation", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthVerify(t *testing.T) {
	router := newTestRouter(&memoryRatings{})

	rec, body := do(t, router, http.MethodGet, "/auth/verify", "", alice)

	require.Equal(t, http.StatusOK, rec.Code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "u1", user["id"])
	assert.Equal(t, "Alice@Example.com", user["email"])
}
