package sustainability

import (
	"sort"
	"strings"
)

// AllCategories is the catalogue filter value that disables category matching.
const AllCategories = "All"

// StoreQuery narrows the store catalogue.
type StoreQuery struct {
	Search   string
	Category string
}

// FilterStores keeps stores whose name or location contains Search (case-insensitive)
// and whose category equals Category exactly.
func FilterStores(stores []Store, q StoreQuery) []Store {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	category := strings.TrimSpace(q.Category)
	matchAll := category == "" || category == AllCategories

	result := make([]Store, 0, len(stores))
	for _, s := range stores {
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.Location), search) {
			continue
		}
		if !matchAll && s.Category != category {
			continue
		}
		result = append(result, s)
	}
	return result
}

// SortStores orders stores in place. Unknown keys fall back to newest first.
func SortStores(stores []Store, sortKey string) {
	switch sortKey {
	case "score", "-score":
		sort.SliceStable(stores, func(i, j int) bool {
			return stores[i].SystemScore() > stores[j].SystemScore()
		})
	case "name":
		sort.SliceStable(stores, func(i, j int) bool {
			return strings.ToLower(stores[i].Name) < strings.ToLower(stores[j].Name)
		})
	default:
		sort.SliceStable(stores, func(i, j int) bool {
			return stores[i].CreatedAt.After(stores[j].CreatedAt)
		})
	}
}

// SortRatingsNewest orders ratings newest first.
func SortRatingsNewest(ratings []Rating) {
	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].CreatedAt.After(ratings[j].CreatedAt)
	})
}
