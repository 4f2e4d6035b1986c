package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps request bodies decoded by DecodeJSON.
const maxBodyBytes = 1 << 20

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// ParseID extracts the positive integer {id} path parameter. Returns the ID and a boolean indicating success.
func ParseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	pathValueID := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(pathValueID, 10, 64)
	if err != nil || id <= 0 {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid ID: %s", pathValueID))
		return 0, false
	}
	return id, true
}

// DecodeJSON decodes the request body into dst, answering 400 on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
