package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// instrument records per-request timing into the metrics window, stamps
// X-Response-Time, and emits a request log line.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		tw := &timedWriter{WrapResponseWriter: ww, start: start}
		next.ServeHTTP(tw, r)

		elapsed := time.Since(start)
		s.metrics.RecordDuration(elapsed)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", elapsed).
			Msg("request")
	})
}

// timedWriter injects the X-Response-Time header just before the response
// headers are flushed; after WriteHeader it is too late to set it.
type timedWriter struct {
	middleware.WrapResponseWriter
	start time.Time
}

func (w *timedWriter) WriteHeader(code int) {
	elapsed := float64(time.Since(w.start).Microseconds()) / 1000
	w.Header().Set("X-Response-Time", fmt.Sprintf("%.2fms", elapsed))
	w.WrapResponseWriter.WriteHeader(code)
}

func (w *timedWriter) Write(b []byte) (int, error) {
	if w.Status() == 0 {
		w.WriteHeader(http.StatusOK)
	}
	return w.WrapResponseWriter.Write(b)
}
