package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/mibanco/pkg/idx"
)

// SlowRequest is the duration above which a request is logged at warn.
const SlowRequest = time.Second

// HTTPMiddleware attaches a request logger to the context and writes one
// http_request line per request. Paths listed in quiet (health checks,
// scrapes) are logged at debug. Bodies are never read or logged.
func HTTPMiddleware(base *slog.Logger, quiet ...string) func(http.Handler) http.Handler {
	quietPaths := make(map[string]struct{}, len(quiet))
	for _, p := range quiet {
		quietPaths[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			// Caller supplied ids must be ULIDs.
			id, err := idx.Parse(r.Header.Get("X-Request-ID"))
			if err != nil {
				id = idx.New()
			}
			reqID := id.String()
			rw.Header().Set("X-Request-ID", reqID)

			logger := base.With(
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			ctx := WithRequestID(WithContext(r.Context(), logger), reqID)

			next.ServeHTTP(rw, r.WithContext(ctx))

			elapsed := time.Since(start)
			attrs := []any{
				slog.Int("status", rw.status),
				slog.Int64("duration_ms", elapsed.Milliseconds()),
				slog.Int("bytes", rw.bytes),
				slog.String("user_agent", r.UserAgent()),
			}

			log := FromContext(ctx)
			_, isQuiet := quietPaths[r.URL.Path]
			switch {
			case elapsed > SlowRequest:
				log.Warn("slow_request", attrs...)
			case isQuiet:
				log.Debug("http_request", attrs...)
			default:
				log.Info("http_request", attrs...)
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter

	status      int
	bytes       int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
