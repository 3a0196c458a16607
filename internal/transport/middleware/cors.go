package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/karmafeed-backend/internal/config"
)

// exposedHeaders lets browser clients read the request id and the
// back-off hint sent with 429 and 503 responses.
const exposedHeaders = "X-Request-Id, Retry-After"

// CORS echoes allowed origins and answers preflight requests with 204.
// A request is a preflight when it is an OPTIONS request carrying
// Access-Control-Request-Method.
func CORS(cfg config.CORSConfig) Middleware {
	allowAny, allowed := parseOrigins(cfg.AllowedOrigins)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if origin != "" && (allowAny || allowed[origin]) {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Expose-Headers", exposedHeaders)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				h.Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func parseOrigins(raw string) (allowAny bool, set map[string]bool) {
	set = make(map[string]bool)
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			allowAny = true
		default:
			set[o] = true
		}
	}
	return allowAny, set
}
