package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

var (
	corsMethods        = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsAllowedHeaders = []string{"Content-Type", requestIDHeader}
	// Downloads name the file in Content-Disposition; rate-limited clients
	// read Retry-After.
	corsExposedHeaders = []string{"Content-Disposition", "Content-Length", "Retry-After", requestIDHeader}
)

// CORS allows the configured origins. Blank entries are ignored and an empty
// list means any origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			allowed = append(allowed, trimmed)
		}
	}
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: corsMethods,
		AllowedHeaders: corsAllowedHeaders,
		ExposedHeaders: corsExposedHeaders,
		MaxAge:         3600,
	}).Handler
}
