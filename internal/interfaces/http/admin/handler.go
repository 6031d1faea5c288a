package admin

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminapp "github.com/sngm3741/ecorating-services/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger           *zap.SugaredLogger
	storeService     adminapp.StoreService
	dashboardService adminapp.DashboardService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger           *zap.SugaredLogger
	StoreService     adminapp.StoreService
	DashboardService adminapp.DashboardService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		logger:           logger,
		storeService:     cfg.StoreService,
		dashboardService: cfg.DashboardService,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stores", h.storeSearchHandler())
	r.Get("/stores/{id}", h.storeDetailHandler())
	r.Post("/stores", h.storeCreateHandler())
	r.Patch("/stores/{id}", h.storeUpdateHandler())
	r.Get("/dashboard", h.dashboardHandler())
	r.Get("/dashboard/export.xlsx", h.dashboardExportHandler())
}
