package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/joseph001479/venda-hoje/internal/metrics"
)

const (
	HEADER_REQUEST_ID = "X-Request-ID"

	CORS_ALLOW_ORIGIN  = "*"
	CORS_ALLOW_HEADERS = "Content-Type,Authorization"
	CORS_ALLOW_METHODS = "GET,PUT,POST,DELETE,OPTIONS"
)

// Middleware wraps the mux with the handlers every route goes through.
// CORS is outermost so that mux 404/405 answers and recovered panics carry
// the headers too. The recoverer sits inside the access log so panics are
// counted as 500s.
func Middleware(next http.Handler) http.Handler {
	return cors(requestID(accessLog(recoverer(next))))
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", CORS_ALLOW_ORIGIN)
		h.Set("Access-Control-Allow-Headers", CORS_ALLOW_HEADERS)
		h.Set("Access-Control-Allow-Methods", CORS_ALLOW_METHODS)
		next.ServeHTTP(w, r)
	})
}

// requestID seeds the request header with a UUID when the caller sent none,
// so chi's RequestID stores it in the context, and echoes it back.
func requestID(next http.Handler) http.Handler {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HEADER_REQUEST_ID, middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r)
	})
	withID := middleware.RequestID(echo)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(middleware.RequestIDHeader) == "" {
			r.Header.Set(middleware.RequestIDHeader, uuid.NewString())
		}
		withID.ServeHTTP(w, r)
	})
}

// recoverer answers panics with the JSON error body clients parse; chi's
// Recoverer writes a bare 500.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slog.Error("[Router:Recover] - Recovered from panic", "request_id", middleware.GetReqID(r.Context()), "panic", rec)
				writeError(w, http.StatusInternalServerError, fmt.Sprintf("Erro interno: %v", rec), "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tStart := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		// ServeMux stores the matched pattern on r.
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		took := time.Since(tStart)
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(route, r.Method).Observe(took.Seconds())
		slog.Info("Request processed",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", took,
		)
	})
}
