package common

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// MaxRequestBody limits JSON request bodies for rating/store endpoints.
const MaxRequestBody = 1 << 20

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *zap.SugaredLogger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Warnw("JSON エンコードに失敗", "error", err)
	}
}

// WriteError writes the {"error": message} envelope.
func WriteError(logger *zap.SugaredLogger, w http.ResponseWriter, status int, message string) {
	WriteJSON(logger, w, status, map[string]string{"error": message})
}

// DecodeJSON reads a size-limited JSON body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(io.LimitReader(r.Body, MaxRequestBody)).Decode(dst)
}
