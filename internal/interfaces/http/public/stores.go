package public

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/ecorating-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/ecorating-services/api/internal/public/application"
)

const requestTimeout = 5 * time.Second

func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		query := r.URL.Query()
		keyword := strings.TrimSpace(query.Get("q"))
		if keyword == "" {
			keyword = strings.TrimSpace(query.Get("keyword"))
		}
		filter := publicapp.StoreFilter{
			Keyword:  keyword,
			Category: strings.TrimSpace(query.Get("category")),
		}
		paging := publicapp.Paging{Sort: strings.TrimSpace(query.Get("sort"))}

		catalogue, err := h.storeQueries.List(ctx, filter, paging)
		if err != nil {
			h.writeServiceError(w, err, "店舗一覧の取得に失敗しました")
			return
		}

		items := make([]storeResponse, 0, len(catalogue.Stores))
		for _, summary := range catalogue.Stores {
			items = append(items, buildStoreResponse(summary))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, storeListResponse{
			Items:      items,
			Total:      len(items),
			Stats:      catalogue.Stats,
			Categories: catalogue.Categories,
		})
	}
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "店舗IDが指定されていません")
			return
		}

		detail, err := h.storeQueries.Detail(ctx, id)
		if err != nil {
			h.writeServiceError(w, err, "店舗情報の取得に失敗しました", "storeId", id)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreDetailResponse(*detail))
	}
}

func (h *Handler) storeRatingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		ratings, err := h.storeQueries.Ratings(ctx, id)
		if err != nil {
			h.writeServiceError(w, err, "レビューの取得に失敗しました", "storeId", id)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildRatingListResponse(ratings))
	}
}

// explanationHandler は生成に時間がかかるため、リクエスト全体のタイムアウトはサービス側に任せる。
func (h *Handler) explanationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		explanation, err := h.explanations.Explain(r.Context(), id)
		if err != nil {
			h.writeServiceError(w, err, "説明文の生成に失敗しました", "storeId", id)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, explanationResponse{
			StoreID:     explanation.StoreID,
			Explanation: explanation.Text,
			Generated:   explanation.Generated,
		})
	}
}
