package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/middlewares/logger"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("error encoding response", zap.Error(err))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		logger.Log.Debug("invalid request body", zap.String("uri", r.RequestURI), zap.Error(err))
		return false
	}
	return true
}

// writeError maps typed errors to their status code; anything else is a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var customErr customerror.CustomError
	if errors.As(err, &customErr) {
		code := customErr.GetHTTPCode()
		if code >= http.StatusInternalServerError {
			logger.Log.Error("request failed", zap.String("uri", r.RequestURI), zap.Error(err))
			http.Error(w, "Internal server error", code)
			return
		}
		logger.Log.Info("request rejected", zap.String("uri", r.RequestURI), zap.Int("status", code), zap.Error(err))
		http.Error(w, customErr.Error(), code)
		return
	}

	logger.Log.Error("request failed", zap.String("uri", r.RequestURI), zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
