package httpadapter

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/tventura/mibot/internal/observability"
)

// withObservability threads chi's request id into the logging context and
// logs one line per request.
func withObservability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := observability.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		r = r.WithContext(ctx)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		observability.LoggerFromContext(ctx).Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

// withRecover turns panics below into the generic server error after
// logging the stack. The per-user lock is released by the pipeline's own
// defers while the panic unwinds.
func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				observability.LoggerFromContext(r.Context()).Error("panic while handling request",
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				writeText(w, http.StatusInternalServerError, msgServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
