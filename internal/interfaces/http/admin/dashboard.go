package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	adminapp "github.com/sngm3741/ecorating-services/api/internal/admin/application"
	"github.com/sngm3741/ecorating-services/api/internal/interfaces/http/common"
)

const (
	dashboardTimeout = 15 * time.Second
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (h *Handler) dashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
		defer cancel()

		dashboard, err := h.dashboardService.Snapshot(ctx)
		if err != nil {
			h.logger.Errorw("dashboard snapshot failed", "error", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "ダッシュボードの取得に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, dashboard)
	}
}

func (h *Handler) dashboardExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
		defer cancel()

		body, err := h.dashboardService.Export(ctx)
		if err != nil {
			if errors.Is(err, adminapp.ErrExportUnavailable) {
				common.WriteError(h.logger, w, http.StatusNotImplemented, "エクスポートは利用できません")
				return
			}
			h.logger.Errorw("dashboard export failed", "error", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "エクスポートに失敗しました")
			return
		}

		filename := fmt.Sprintf("ecorating-dashboard-%s.xlsx", time.Now().UTC().Format("20060102"))
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			h.logger.Warnw("dashboard export write failed", "error", err)
		}
	}
}
