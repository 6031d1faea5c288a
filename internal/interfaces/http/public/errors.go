package public

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/ecorating-services/api/internal/interfaces/http/common"
	publicdomain "github.com/sngm3741/ecorating-services/api/internal/public/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

// writeServiceError maps application errors onto HTTP statuses. Unknown errors are logged
// and reported with the generic message.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, message string, keysAndValues ...any) {
	switch {
	case errors.Is(err, sustainability.ErrStoreNotFound), errors.Is(err, mongo.ErrNoDocuments):
		common.WriteError(h.logger, w, http.StatusNotFound, "店舗が見つかりません")
	case errors.Is(err, sustainability.ErrIncompleteRating),
		errors.Is(err, sustainability.ErrMetricOutOfRange),
		errors.Is(err, sustainability.ErrCommentTooLong):
		common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
	case errors.Is(err, publicdomain.ErrRaterEmailRequired):
		common.WriteError(h.logger, w, http.StatusForbidden, err.Error())
	default:
		h.logger.Errorw(message, append(keysAndValues, "error", err)...)
		common.WriteError(h.logger, w, http.StatusInternalServerError, message)
	}
}
