package http

import (
	"net"
	"net/http"
	"time"

	"mortgage-planner/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware puts logger in the request context and logs every
// completed request, at warn level for 4xx and error level for 5xx.
func LoggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	logger = logger.WithComponent(logging.ComponentHTTP)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ip, _, _ := net.SplitHostPort(r.RemoteAddr)

		reqLogger := logger.With(logging.FieldClientIP, ip)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logging.WithContext(r.Context(), reqLogger)))

		args := []any{
			logging.FieldMethod, r.Method,
			logging.FieldPath, r.URL.Path,
			logging.FieldStatus, rec.status,
			logging.FieldDuration, time.Since(start).Milliseconds(),
		}
		switch {
		case rec.status >= 500:
			reqLogger.ErrorContext(r.Context(), "HTTP request completed", args...)
		case rec.status >= 400:
			reqLogger.WarnContext(r.Context(), "HTTP request completed", args...)
		default:
			reqLogger.InfoContext(r.Context(), "HTTP request completed", args...)
		}
	})
}
