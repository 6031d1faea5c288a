package domain

import "github.com/sngm3741/ecorating-services/api/internal/sustainability"

// StoreSummary is a catalogue entry with its derived score and badge.
type StoreSummary struct {
	Store       sustainability.Store
	SystemScore float64
	Badge       string
}

// NewStoreSummary derives the score and badge of a store.
func NewStoreSummary(store sustainability.Store) StoreSummary {
	score := store.SystemScore()
	return StoreSummary{
		Store:       store,
		SystemScore: score,
		Badge:       sustainability.ScoreBadge(score),
	}
}

// Catalogue is the filtered store list plus stats over the whole collection.
type Catalogue struct {
	Stores     []StoreSummary
	Stats      sustainability.CatalogStats
	Categories []string
}

// StoreDetail is the store page: scores, community aggregate and comparison rows.
// Community is nil when the store has no ratings yet.
type StoreDetail struct {
	StoreSummary
	Community  *sustainability.RatingAggregate
	Comparison []sustainability.MetricComparison
}
