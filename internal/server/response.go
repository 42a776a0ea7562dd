package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// writeError writes an error JSON response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, zap.NewNop(), status, map[string]string{"error": message})
}

// failure maps err to a status and writes it. Internal errors are logged and
// replaced with a generic message.
func failure(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		writeError(w, status, "Internal server error")
		return
	}

	body := map[string]string{"error": err.Error()}
	if code := errorCode(err); code != "" {
		body["code"] = code
	}
	writeJSON(w, logger, status, body)
}

// decodeJSON decodes the request body into dst, writing a 400 and returning
// false when it is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return false
	}
	writeError(w, http.StatusBadRequest, "Invalid request body")
	return false
}
