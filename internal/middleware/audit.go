package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NordCoder/Postbox/internal/obs"
)

type auditCtxKey int

const auditRecordKey auditCtxKey = 1

// auditRecord is the mutable per-request slot the authentication stage writes
// the verified subject into. Audit wraps the chain from the outside, so at
// capture time every request is still anonymous; completion records pick up
// whatever the gate resolved. Single goroutine per request, no locking.
type auditRecord struct {
	subject string
}

func setAuditSubject(ctx context.Context, subject string) {
	if rec, ok := ctx.Value(auditRecordKey).(*auditRecord); ok {
		rec.subject = subject
	}
}

// statusRecorder captures the final status written by downstream stages.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	return sr.ResponseWriter.Write(b)
}

func isSensitivePath(path string) bool {
	return strings.Contains(path, "/login") ||
		strings.Contains(path, "/register") ||
		strings.Contains(path, "/password")
}

// Audit emits structured security-audit records. Sensitive paths are logged
// on entry and on clean completion; any 4xx/5xx outcome is logged as a
// warning regardless of path. Non-sensitive successes stay silent.
func Audit(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			sensitive := isSensitivePath(r.URL.Path)

			rec := &auditRecord{subject: "anonymous"}
			r = r.WithContext(context.WithValue(r.Context(), auditRecordKey, rec))

			if sensitive {
				log.Info("sensitive operation initiated",
					zap.String("request_id", requestID),
					zap.String("remote_addr", r.RemoteAddr),
					zap.String("method", r.Method),
					zap.String("uri", r.URL.Path),
					zap.String("user_id", rec.subject),
				)
			}

			sr := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(sr, r)

			status := sr.status
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)
			obs.ObserveHTTPRequest(r.Method, r.URL.Path, status, duration)

			switch {
			case status >= 400:
				log.Warn("request failed",
					zap.String("request_id", requestID),
					zap.String("remote_addr", r.RemoteAddr),
					zap.String("method", r.Method),
					zap.String("uri", r.URL.Path),
					zap.String("user_id", rec.subject),
					zap.Int("status", status),
					zap.Duration("duration", duration),
				)
			case sensitive:
				log.Info("sensitive operation completed",
					zap.String("request_id", requestID),
					zap.String("remote_addr", r.RemoteAddr),
					zap.String("method", r.Method),
					zap.String("uri", r.URL.Path),
					zap.String("user_id", rec.subject),
					zap.Int("status", status),
					zap.Duration("duration", duration),
				)
			}
		})
	}
}
