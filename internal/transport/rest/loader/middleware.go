package loader

import (
	"net/http"

	"github.com/heartmarshall/karmafeed-backend/pkg/ctxutil"
)

// Middleware creates per-request Loaders for the authenticated viewer. It
// must run after the auth middleware.
func Middleware(likes likeChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loaders := NewLoaders(likes, ctxutil.ViewerID(r.Context()))
			ctx := WithLoaders(r.Context(), loaders)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
