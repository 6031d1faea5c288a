package application

import (
	"context"
	"errors"
	"sync"

	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

type memoryStores struct {
	stores []sustainability.Store
	err    error
}

func (m *memoryStores) FindAll(context.Context) ([]sustainability.Store, error) {
	if m.err != nil {
		return nil, m.err
	}
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
	err     error
}

func (m *memoryRatings) Find(_ context.Context, filter RatingFilter) ([]sustainability.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
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
	if m.err != nil {
		return m.err
	}
	r.ID = "r-new"
	m.ratings = append(m.ratings, *r)
	return nil
}

type countingInvalidator struct {
	calls int
	err   error
}

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.calls++
	return c.err
}

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (g *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.text, g.err
}

var errBoom = errors.New("boom")
