package sustainability

// RatingAggregate is the community view of a single store.
// It is always a fresh fold over the ratings it was built from.
type RatingAggregate struct {
	Averages     Metrics `json:"averages"`
	Overall      float64 `json:"overall"`
	TotalReviews int     `json:"totalReviews"`
}

// Aggregate averages the ratings of one store. ok is false when there are no ratings,
// so callers can tell "no reviews yet" apart from an average of zero.
func Aggregate(ratings []Rating) (agg RatingAggregate, ok bool) {
	if len(ratings) == 0 {
		return RatingAggregate{}, false
	}

	var sum Metrics
	overall := 0.0
	for _, r := range ratings {
		sum = sum.add(r.Metrics)
		overall += r.OverallRating
	}

	n := float64(len(ratings))
	return RatingAggregate{
		Averages:     sum.div(n),
		Overall:      overall / n,
		TotalReviews: len(ratings),
	}, true
}

// RatingsForStore returns the ratings referencing storeID, in input order.
func RatingsForStore(ratings []Rating, storeID string) []Rating {
	result := make([]Rating, 0)
	for _, r := range ratings {
		if r.StoreID == storeID {
			result = append(result, r)
		}
	}
	return result
}

// GroupByStore indexes ratings by store ID, keeping input order within each group.
func GroupByStore(ratings []Rating) map[string][]Rating {
	grouped := make(map[string][]Rating)
	for _, r := range ratings {
		grouped[r.StoreID] = append(grouped[r.StoreID], r)
	}
	return grouped
}
