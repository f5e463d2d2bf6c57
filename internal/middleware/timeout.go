package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"go-file-manager/internal/model"
	"go-file-manager/pkg/apierror"
)

const defaultRequestTimeout = 30 * time.Second

// timeoutBody is the envelope http.TimeoutHandler writes when a store call
// outlives the request budget.
var timeoutBody = func() string {
	encoded, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    apierror.CodeRequestTimeout,
			Message: "store operation did not finish in time",
		},
	})
	return string(encoded)
}()

// Timeout buffers the response, so it must not wrap the websocket route.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, timeoutBody)
	}
}
