package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// Recover turns a panicking handler into a 500. A plugin that panics halfway
// through a sheet must not take the server down with it. Headers already
// set for the download are dropped so the client does not save the error
// as a workbook.
func Recover(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error().
					Str("rid", GetRequestID(r)).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("panic", fmt.Sprint(rec)).
					Bytes("stack", debug.Stack()).
					Msg("panic")

				h := w.Header()
				for _, k := range []string{"Content-Disposition", "Content-Length", "Cache-Control"} {
					h.Del(k)
				}
				h.Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = fmt.Fprintf(w, `{"error":"internal","rid":%q}`, GetRequestID(r))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
