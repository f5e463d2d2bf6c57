package middleware

import (
	"encoding/json"
	"net/http"

	"go-file-manager/internal/model"
)

// writeFailure sends the API error envelope for requests the middleware
// stops before they reach a handler.
func writeFailure(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: code, Message: message},
	})
}
