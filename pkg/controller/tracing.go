package controller

import (
	"net/http"

	"armsim/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "armsim/pkg/controller"

// WithTracing returns a middleware that runs every request inside a server
// span. The span's trace ID is attached to the request logger. A nil
// provider selects the otel global one.
func WithTracing(next http.Handler, tp trace.TracerProvider) http.Handler {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(tracerName)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			))
		defer span.End()

		if sc := span.SpanContext(); sc.HasTraceID() {
			ctx = logger.WithFields(ctx, zap.String("trace_id", sc.TraceID().String()))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
