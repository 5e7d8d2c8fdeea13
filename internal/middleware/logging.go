package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	localcontext "github.com/rahul4469/truthguardian/context"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request and stores a request-scoped
// logger in the request context. It expects chi's RequestID middleware to
// run first.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLogger := logger.With(zap.String("request_id", chimw.GetReqID(r.Context())))
			r = r.WithContext(localcontext.ContextSetLogger(r.Context(), reqLogger))

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("remote", r.RemoteAddr),
				}
				if status >= http.StatusInternalServerError {
					reqLogger.Warn("request", fields...)
					return
				}
				reqLogger.Info("request", fields...)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
