package sustainability

const ecoLeaderThreshold = 4.5

// OverviewStats is the headline row of the retailer dashboard.
type OverviewStats struct {
	TotalStores        int     `json:"totalStores"`
	AvgSystemRating    float64 `json:"avgSystemRating"`
	TotalReviews       int     `json:"totalReviews"`
	AvgCommunityRating float64 `json:"avgCommunityRating"`
}

// Overview summarises the full store and rating collections. Averages are 0 for empty input.
func Overview(stores []Store, ratings []Rating) OverviewStats {
	stats := OverviewStats{
		TotalStores:  len(stores),
		TotalReviews: len(ratings),
	}
	if len(stores) > 0 {
		total := 0.0
		for _, s := range stores {
			total += s.SystemScore()
		}
		stats.AvgSystemRating = total / float64(len(stores))
	}
	if len(ratings) > 0 {
		total := 0.0
		for _, r := range ratings {
			total += r.OverallRating
		}
		stats.AvgCommunityRating = total / float64(len(ratings))
	}
	return stats
}

// StorePerformance is a dashboard row for one store.
type StorePerformance struct {
	StoreID      string  `json:"storeId"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	SystemScore  float64 `json:"systemScore"`
	TotalReviews int     `json:"totalReviews"`
}

// PerformanceOverview returns rows for the first limit stores. limit <= 0 means all stores.
func PerformanceOverview(stores []Store, ratings []Rating, limit int) []StorePerformance {
	if limit > 0 && len(stores) > limit {
		stores = stores[:limit]
	}
	byStore := GroupByStore(ratings)
	rows := make([]StorePerformance, 0, len(stores))
	for _, s := range stores {
		rows = append(rows, StorePerformance{
			StoreID:      s.ID,
			Name:         s.Name,
			Category:     s.Category,
			SystemScore:  Round1(s.SystemScore()),
			TotalReviews: len(byStore[s.ID]),
		})
	}
	return rows
}

// CatalogStats is the summary shown above the store list.
type CatalogStats struct {
	TotalStores int     `json:"totalStores"`
	Categories  int     `json:"categories"`
	AvgRating   float64 `json:"avgRating"`
	EcoLeaders  int     `json:"ecoLeaders"`
}

func Catalog(stores []Store) CatalogStats {
	stats := CatalogStats{TotalStores: len(stores)}
	if len(stores) == 0 {
		return stats
	}
	categories := make(map[string]struct{})
	total := 0.0
	for _, s := range stores {
		categories[s.Category] = struct{}{}
		score := s.SystemScore()
		total += score
		if score >= ecoLeaderThreshold {
			stats.EcoLeaders++
		}
	}
	stats.Categories = len(categories)
	stats.AvgRating = Round1(total / float64(len(stores)))
	return stats
}

// ScoreBadge maps a score to its display tier.
func ScoreBadge(score float64) string {
	switch {
	case score >= 4.5:
		return "Excellent"
	case score >= 3.5:
		return "Good"
	case score >= 2.5:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

// MetricComparison is one chart row: operator score against community average.
type MetricComparison struct {
	Key       MetricKey `json:"key"`
	Name      string    `json:"name"`
	System    float64   `json:"system"`
	Community float64   `json:"community"`
}

// Compare builds the system vs community chart rows. Community values are 0 when the
// store has no ratings.
func Compare(store Store, agg RatingAggregate, hasRatings bool) []MetricComparison {
	rows := make([]MetricComparison, 0, len(MetricKeys))
	for _, key := range MetricKeys {
		row := MetricComparison{
			Key:    key,
			Name:   key.ShortName(),
			System: store.Metrics.Value(key),
		}
		if hasRatings {
			row.Community = agg.Averages.Value(key)
		}
		rows = append(rows, row)
	}
	return rows
}

// Profile is the contribution summary of one user.
type Profile struct {
	TotalReviews      int     `json:"totalReviews"`
	AvgRating         float64 `json:"avgRating"`
	TopStore          string  `json:"topStore"`
	ContributionLevel string  `json:"contributionLevel"`
}

// ProfileStats summarises a user's own ratings.
func ProfileStats(myRatings []Rating) Profile {
	if len(myRatings) == 0 {
		return Profile{
			TopStore:          "N/A",
			ContributionLevel: contributionLevel(0),
		}
	}

	total := 0.0
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range myRatings {
		total += r.OverallRating
		name := r.StoreName
		if name == "" {
			name = "Unknown"
		}
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++
	}

	top := order[0]
	for _, name := range order[1:] {
		if counts[name] > counts[top] {
			top = name
		}
	}

	return Profile{
		TotalReviews:      len(myRatings),
		AvgRating:         Round1(total / float64(len(myRatings))),
		TopStore:          top,
		ContributionLevel: contributionLevel(len(myRatings)),
	}
}

func contributionLevel(reviews int) string {
	switch {
	case reviews >= 20:
		return "Sustainability Champion"
	case reviews >= 10:
		return "Eco Advocate"
	case reviews >= 5:
		return "Active Contributor"
	default:
		return "New User"
	}
}
