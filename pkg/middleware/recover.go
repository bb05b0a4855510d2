package middleware

import (
	"net/http"

	"book-review/pkg/utils"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Recover turns a handler panic into a 500 with a GraphQL-shaped body. If the
// handler already started the response it is left as is.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := wrapWriter(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("Panic recovered",
					zap.Any("panic", rec),
					zap.String("request_id", chimw.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Bool("response_started", rw.wroteHeader),
					zap.Stack("stack"),
				)
				if !rw.wroteHeader {
					utils.ResponseInternalError(rw)
				}
			}()
			next.ServeHTTP(rw, r)
		})
	}
}
