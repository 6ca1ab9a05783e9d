package routes

import (
	"encoding/json"
	"net/http"

	"medichat/medichat/types"
	"medichat/medichat/utils/logging"

	"go.uber.org/zap"
)

// writeError emits the uniform error envelope used by every route.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	logging.ErrorLogger.Error("HTTP error", zap.Int("status", statusCode), zap.String("message", message))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(types.ErrorResponse{
		Status:     "error",
		Message:    message,
		StatusCode: statusCode,
	})
}
