package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	adminapp "github.com/sngm3741/ecorating-services/api/internal/admin/application"
	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
	"github.com/sngm3741/ecorating-services/api/internal/interfaces/http/common"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

const requestTimeout = 5 * time.Second

func (h *Handler) storeSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		queryValues := r.URL.Query()
		category := common.CanonicalCategory(queryValues.Get("category"))
		if category == sustainability.AllCategories {
			category = ""
		}
		keyword := strings.TrimSpace(queryValues.Get("keyword"))
		page, _ := common.ParsePositiveInt(queryValues.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(queryValues.Get("limit"), 20)

		filter := adminapp.StoreFilter{Category: category, Keyword: keyword}
		paging := adminapp.Paging{Page: page, Limit: limit, Sort: strings.TrimSpace(queryValues.Get("sort"))}

		stores, err := h.storeService.List(ctx, filter, paging)
		if err != nil {
			h.logger.Errorw("admin store search failed", "error", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "店舗一覧の取得に失敗しました")
			return
		}

		items := make([]adminStoreResponse, 0, len(stores))
		for _, store := range stores {
			items = append(items, adminStoreDomainToResponse(store))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminStoreListResponse{Items: items, Page: page, Limit: limit})
	}
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		store, err := h.storeService.Detail(ctx, id)
		if err != nil {
			h.writeStoreError(w, err, "店舗情報の取得に失敗しました", id)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminStoreDomainToResponse(*store))
	}
}

func (h *Handler) storeCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminStoreRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "リクエストの形式が不正です")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		store, err := h.storeService.Create(ctx, req.applyTo(adminapp.UpsertStoreCommand{}))
		if err != nil {
			h.writeStoreError(w, err, "店舗の登録に失敗しました", "")
			return
		}

		h.logger.Infow("store created", "storeId", store.ID, "name", store.Name)
		common.WriteJSON(h.logger, w, http.StatusCreated, adminStoreCreateResponse{Store: adminStoreDomainToResponse(*store), Created: true})
	}
}

func (h *Handler) storeUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		var req adminStoreRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "リクエストの形式が不正です")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		current, err := h.storeService.Detail(ctx, id)
		if err != nil {
			h.writeStoreError(w, err, "店舗情報の取得に失敗しました", id)
			return
		}

		store, err := h.storeService.Update(ctx, id, req.applyTo(commandFromStore(*current)))
		if err != nil {
			h.writeStoreError(w, err, "店舗の更新に失敗しました", id)
			return
		}

		h.logger.Infow("store updated", "storeId", store.ID)
		common.WriteJSON(h.logger, w, http.StatusOK, adminStoreDomainToResponse(*store))
	}
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error, message, id string) {
	switch {
	case errors.Is(err, adminapp.ErrInvalidStore):
		common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
	case errors.Is(err, admindomain.ErrStoreExists):
		common.WriteError(h.logger, w, http.StatusConflict, "同じ名前と所在地の店舗が既に登録されています")
	case errors.Is(err, sustainability.ErrStoreNotFound), errors.Is(err, mongo.ErrNoDocuments):
		common.WriteError(h.logger, w, http.StatusNotFound, "店舗が見つかりません")
	default:
		h.logger.Errorw(message, "storeId", id, "error", err)
		common.WriteError(h.logger, w, http.StatusInternalServerError, message)
	}
}
