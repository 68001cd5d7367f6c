package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// LimitBytes caps the request body at n bytes; n <= 0 leaves it unlimited.
// Declared lengths over the limit are refused up front, anything else fails
// with *http.MaxBytesError once the handler reads past n.
func LimitBytes(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if n <= 0 {
			return next
		}
		limited := chimw.RequestSize(n)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > n {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}
