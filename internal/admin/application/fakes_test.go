package application

import (
	"context"
	"sync"

	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

type fakeSource struct {
	stores     []sustainability.Store
	ratings    []sustainability.Rating
	storesErr  error
	ratingsErr error

	mu    sync.Mutex
	calls int
}

func (f *fakeSource) AllStores(context.Context) ([]sustainability.Store, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.stores, f.storesErr
}

func (f *fakeSource) AllRatings(context.Context) ([]sustainability.Rating, error) {
	return f.ratings, f.ratingsErr
}

type memoryCache struct {
	version     int64
	entries     map[int64]*admindomain.Dashboard
	versionErr  error
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[int64]*admindomain.Dashboard)}
}

func (c *memoryCache) Version(context.Context) (int64, error) {
	return c.version, c.versionErr
}

func (c *memoryCache) Get(_ context.Context, version int64) (*admindomain.Dashboard, bool, error) {
	d, ok := c.entries[version]
	return d, ok, nil
}

func (c *memoryCache) Set(_ context.Context, version int64, d *admindomain.Dashboard) error {
	c.entries[version] = d
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.version++
	c.invalidated++
	return nil
}

type fakeStoreRepo struct {
	stores  map[string]*admindomain.Store
	created []*admindomain.Store
	updated []*admindomain.Store
}

func (r *fakeStoreRepo) Find(context.Context, StoreFilter, Paging) ([]admindomain.Store, error) {
	out := make([]admindomain.Store, 0, len(r.stores))
	for _, s := range r.stores {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeStoreRepo) FindByID(_ context.Context, id string) (*admindomain.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, sustainability.ErrStoreNotFound
	}
	return s, nil
}

func (r *fakeStoreRepo) Create(_ context.Context, s *admindomain.Store) error {
	s.ID = "new-id"
	r.created = append(r.created, s)
	return nil
}

func (r *fakeStoreRepo) Update(_ context.Context, s *admindomain.Store) error {
	r.updated = append(r.updated, s)
	return nil
}

type stubRenderer struct {
	rendered *admindomain.Dashboard
}

func (r *stubRenderer) Render(d *admindomain.Dashboard) ([]byte, error) {
	r.rendered = d
	return []byte("xlsx"), nil
}
