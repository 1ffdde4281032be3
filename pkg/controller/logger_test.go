package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"armsim/pkg/controller"
	"armsim/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"x-forwarded-for", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "", "1.2.3.4"},
		{"x-real-ip", map[string]string{"X-Real-IP": "9.8.7.6"}, "", "9.8.7.6"},
		{"remote addr", nil, "10.0.0.1:12345", "10.0.0.1"},
		{"invalid remote addr", nil, "not-an-addr", "not-an-addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if tt.remote != "" {
				req.RemoteAddr = tt.remote
			}
			require.Equal(t, tt.want, controller.GetClientIP(req))
		})
	}
}

func TestWithLogger_RequestIDAndAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Echo-Request-Id", controller.RequestID(r.Context()))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithLogger(r.Context(), zap.New(core))
		controller.WithLogger(next).ServeHTTP(w, r.WithContext(ctx))
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/simulations", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "abc-123", rec.Header().Get("X-Echo-Request-Id"))
	require.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))

	entries := logs.FilterMessage("Access log").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "abc-123", fields[string(controller.RequestIDKey)])
	require.EqualValues(t, http.StatusCreated, fields["status_code"])
	require.EqualValues(t, 5, fields["bytes"])

	// a fresh id is generated when none is sent
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, rec.Header().Get("X-Echo-Request-Id"))
}

func TestWithTracing_StartsSpan(t *testing.T) {
	var spanCtx trace.SpanContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanCtx = trace.SpanContextFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil).WithContext(context.Background())
	controller.WithTracing(next, nil).ServeHTTP(rec, req)

	// the global provider is a no-op, so the span carries no trace id
	require.False(t, spanCtx.HasTraceID())
	require.Equal(t, http.StatusOK, rec.Code)
}
