package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	publicapp "github.com/sngm3741/ecorating-services/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger         *zap.SugaredLogger
	storeQueries   publicapp.StoreQueryService
	ratingQueries  publicapp.RatingQueryService
	ratingCommands publicapp.RatingCommandService
	explanations   publicapp.ExplanationService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger         *zap.SugaredLogger
	StoreQueries   publicapp.StoreQueryService
	RatingQueries  publicapp.RatingQueryService
	RatingCommands publicapp.RatingCommandService
	Explanations   publicapp.ExplanationService
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		logger:         logger,
		storeQueries:   cfg.StoreQueries,
		ratingQueries:  cfg.RatingQueries,
		ratingCommands: cfg.RatingCommands,
		explanations:   cfg.Explanations,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/stores", h.storeListHandler())
	r.Get("/stores/{id}", h.storeDetailHandler())
	r.Get("/stores/{id}/ratings", h.storeRatingsHandler())
	r.Post("/stores/{id}/explanation", h.explanationHandler())
	r.Get("/ratings", h.ratingListHandler())
	r.With(authMiddleware).Post("/stores/{id}/ratings", h.ratingCreateHandler())
	r.With(authMiddleware).Get("/me/ratings", h.myRatingsHandler())
	r.With(authMiddleware).Get("/me/profile", h.myProfileHandler())
	r.With(authMiddleware).Get("/auth/verify", h.authVerifyHandler())
}
