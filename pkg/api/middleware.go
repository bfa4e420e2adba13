package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

type requestKey struct{}

// requestInfo is attached to every request context by observe.
type requestInfo struct {
	id  string
	log *slog.Logger
}

// RequestIDFromContext returns the id assigned to the request, or "" outside
// of a request.
func RequestIDFromContext(ctx context.Context) string {
	if ri, ok := ctx.Value(requestKey{}).(*requestInfo); ok {
		return ri.id
	}
	return ""
}

// requestLogger returns the app logger tagged with the request id.
func (a *App) requestLogger(r *http.Request) *slog.Logger {
	if ri, ok := r.Context().Value(requestKey{}).(*requestInfo); ok {
		return ri.log
	}
	return a.log
}

// responseMeter counts what the handler wrote.
type responseMeter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (m *responseMeter) WriteHeader(code int) {
	if m.status == 0 {
		m.status = code
	}
	m.ResponseWriter.WriteHeader(code)
}

func (m *responseMeter) Write(b []byte) (int, error) {
	if m.status == 0 {
		m.status = http.StatusOK
	}
	n, err := m.ResponseWriter.Write(b)
	m.bytes += n
	return n, err
}

// observe assigns a request id, echoes it in the response and logs one
// http_request line per request through the request logger.
func (a *App) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ri := &requestInfo{id: id, log: a.log.With("request_id", id)}

		m := &responseMeter{ResponseWriter: w}
		next.ServeHTTP(m, r.WithContext(context.WithValue(r.Context(), requestKey{}, ri)))
		if m.status == 0 {
			m.status = http.StatusOK
		}
		ri.log.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.status,
			"bytes", m.bytes,
			"duration", time.Since(start),
		)
	})
}
