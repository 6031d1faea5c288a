package sustainability

// CategorySummary is one row of the category performance breakdown.
type CategorySummary struct {
	Name     string  `json:"name"`
	Stores   int     `json:"stores"`
	AvgScore float64 `json:"avgScore"`
}

// BreakdownByCategory groups stores by exact category string. Rows keep the order in which
// each category first appears in stores.
func BreakdownByCategory(stores []Store) []CategorySummary {
	type bucket struct {
		count      int
		totalScore float64
	}

	order := make([]string, 0)
	buckets := make(map[string]*bucket)
	for _, store := range stores {
		b, ok := buckets[store.Category]
		if !ok {
			b = &bucket{}
			buckets[store.Category] = b
			order = append(order, store.Category)
		}
		b.count++
		b.totalScore += store.SystemScore()
	}

	result := make([]CategorySummary, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		result = append(result, CategorySummary{
			Name:     name,
			Stores:   b.count,
			AvgScore: Round1(b.totalScore / float64(b.count)),
		})
	}
	return result
}
