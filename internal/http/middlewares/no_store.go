package middlewares

import "net/http"

// WithNoStore agrega Cache-Control: no-store a la respuesta.
// Para endpoints que tocan sesión (login, logout, profile).
func WithNoStore() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Pragma", "no-cache")
			next.ServeHTTP(w, r)
		})
	}
}
