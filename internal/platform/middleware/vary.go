package middleware

import "net/http"

// Vary returns middleware that adds Accept to the Vary header on all
// responses. The API negotiates between JSON and CBOR on Accept, so caches
// must key on it. The CORS middleware separately adds Origin to Vary.
func Vary() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept")
			next.ServeHTTP(w, r)
		})
	}
}
