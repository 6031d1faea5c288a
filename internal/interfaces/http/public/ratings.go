package public

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/ecorating-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/ecorating-services/api/internal/public/application"
	publicdomain "github.com/sngm3741/ecorating-services/api/internal/public/domain"
)

func (h *Handler) ratingListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		query := r.URL.Query()
		filter := publicapp.RatingFilter{
			StoreID:   strings.TrimSpace(query.Get("storeId")),
			UserEmail: strings.ToLower(strings.TrimSpace(query.Get("userEmail"))),
		}

		ratings, err := h.ratingQueries.List(ctx, filter)
		if err != nil {
			h.writeServiceError(w, err, "レビュー一覧の取得に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildRatingListResponse(ratings))
	}
}

func (h *Handler) ratingCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rater, ok := h.raterFromRequest(w, r)
		if !ok {
			return
		}

		var req ratingCreateRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "リクエストの形式が不正です")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		storeID := strings.TrimSpace(chi.URLParam(r, "id"))
		rating, err := h.ratingCommands.Submit(ctx, publicapp.SubmitRatingCommand{
			StoreID:             storeID,
			Rater:               rater,
			EnergyEfficiency:    req.EnergyEfficiency,
			WasteManagement:     req.WasteManagement,
			ProductSourcing:     req.ProductSourcing,
			CarbonFootprint:     req.CarbonFootprint,
			CommunityEngagement: req.CommunityEngagement,
			Comment:             req.Comment,
		})
		if err != nil {
			h.writeServiceError(w, err, "レビューの投稿に失敗しました", "storeId", storeID)
			return
		}

		h.logger.Infow("rating submitted", "storeId", rating.StoreID, "ratingId", rating.ID)
		common.WriteJSON(h.logger, w, http.StatusCreated, buildRatingResponse(*rating))
	}
}

func (h *Handler) myRatingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rater, ok := h.raterFromRequest(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		ratings, err := h.ratingQueries.List(ctx, publicapp.RatingFilter{UserEmail: rater.Email})
		if err != nil {
			h.writeServiceError(w, err, "レビュー一覧の取得に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildRatingListResponse(ratings))
	}
}

func (h *Handler) myProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rater, ok := h.raterFromRequest(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		profile, err := h.ratingQueries.Profile(ctx, rater.Email)
		if err != nil {
			h.writeServiceError(w, err, "プロフィールの取得に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"user":    map[string]string{"email": rater.Email, "name": rater.Name},
			"profile": profile,
		})
	}
}

// raterFromRequest は認証済みユーザーを Rater に変換する。失敗時はレスポンスを書き込み false を返す。
func (h *Handler) raterFromRequest(w http.ResponseWriter, r *http.Request) (publicdomain.Rater, bool) {
	user, ok := common.UserFromContext(r.Context())
	if !ok {
		common.WriteError(h.logger, w, http.StatusUnauthorized, "ログインが必要です")
		return publicdomain.Rater{}, false
	}
	rater, err := publicdomain.NewRater(user.ID, user.Email, user.DisplayName())
	if err != nil {
		h.writeServiceError(w, err, "認証情報の取得に失敗しました")
		return publicdomain.Rater{}, false
	}
	return rater, true
}
