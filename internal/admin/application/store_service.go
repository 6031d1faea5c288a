package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
)

// storeService implements StoreService.
type storeService struct {
	repo   StoreRepository
	cache  DashboardCache
	logger *zap.SugaredLogger
}

// NewStoreService wires the store repository. cache may be nil when no dashboard cache is configured.
func NewStoreService(repo StoreRepository, cache DashboardCache, logger *zap.SugaredLogger) StoreService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &storeService{repo: repo, cache: cache, logger: logger}
}

func (s *storeService) List(ctx context.Context, filter StoreFilter, paging Paging) ([]admindomain.Store, error) {
	return s.repo.Find(ctx, filter, paging)
}

func (s *storeService) Detail(ctx context.Context, id string) (*admindomain.Store, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *storeService) Create(ctx context.Context, cmd UpsertStoreCommand) (*admindomain.Store, error) {
	store, err := buildStoreFromCommand("", cmd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStore, err)
	}
	now := time.Now().UTC()
	store.CreatedAt = now
	store.UpdatedAt = now
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return store, nil
}

func (s *storeService) Update(ctx context.Context, id string, cmd UpsertStoreCommand) (*admindomain.Store, error) {
	store, err := buildStoreFromCommand(id, cmd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStore, err)
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	store.ID = current.ID
	store.CreatedAt = current.CreatedAt
	store.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, store); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return store, nil
}

// invalidate は店舗変更後にダッシュボードのキャッシュ世代を進める。失敗しても書き込み自体は成功扱い。
func (s *storeService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warnw("dashboard cache invalidation failed", "error", err)
	}
}

func buildStoreFromCommand(id string, cmd UpsertStoreCommand) (*admindomain.Store, error) {
	name, err := admindomain.NewStoreName(cmd.Name)
	if err != nil {
		return nil, err
	}
	location, err := admindomain.NewLocation(cmd.Location)
	if err != nil {
		return nil, err
	}
	category, err := admindomain.NewCategory(cmd.Category)
	if err != nil {
		return nil, err
	}
	description, err := admindomain.NewDescription(cmd.Description)
	if err != nil {
		return nil, err
	}
	imageURL, err := admindomain.NewURL(cmd.ImageURL)
	if err != nil {
		return nil, err
	}
	metrics, err := admindomain.NewStoreMetrics(cmd.Metrics)
	if err != nil {
		return nil, err
	}

	return &admindomain.Store{
		ID:          id,
		Name:        name,
		Location:    location,
		Category:    category,
		Description: description,
		ImageURL:    imageURL,
		Metrics:     metrics,
	}, nil
}
