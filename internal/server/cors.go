package server

import (
	"net/http"
	"strings"

	"github.com/solentra/enrichflow/config"
)

// corsMiddleware applies the configured origin policy to every route and
// answers preflight requests. An allowlist entry of "*" permits any
// origin; otherwise a request's Origin must match an entry exactly
// (case-insensitively) to be echoed back.
func corsMiddleware(cfg config.CORSConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allowed := allowedOrigin(cfg.AllowedOrigins, r.Header.Get("Origin")); allowed != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func allowedOrigin(allowlist []string, origin string) string {
	for _, candidate := range allowlist {
		if candidate == "*" {
			return "*"
		}
		if origin != "" && strings.EqualFold(candidate, origin) {
			return origin
		}
	}
	return ""
}
