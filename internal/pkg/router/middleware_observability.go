package router

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/saltlock/internal/pkg/config"
	"github.com/shandysiswandi/saltlock/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// maxLoggedBodyBytes caps how much of each body is kept for logs.
const maxLoggedBodyBytes = 32 * 1024

// responseCapture records status, size, a capped body copy and the handler error.
type responseCapture struct {
	http.ResponseWriter
	status  int
	written int
	body    bytes.Buffer
	capped  bool
	err     error
}

func (c *responseCapture) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *responseCapture) Write(p []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}

	if room := maxLoggedBodyBytes - c.body.Len(); room < len(p) {
		c.body.Write(p[:max(room, 0)])
		c.capped = true
	} else {
		c.body.Write(p)
	}

	n, err := c.ResponseWriter.Write(p)
	c.written += n
	return n, err
}

// SetError lets the router hand the handler error to the span.
func (c *responseCapture) SetError(err error) {
	c.err = err
}

func (c *responseCapture) Flush() {
	if f, ok := c.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (c *responseCapture) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := c.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

func (c *responseCapture) statusCode() int {
	if c.status == 0 {
		return http.StatusOK
	}
	return c.status
}

// observer traces, meters and logs every request.
type observer struct {
	maskKeys map[string]struct{}
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newObserver(cfg config.Config, ins instrument.Instrumentation) *observer {
	var fields []string
	if cfg != nil {
		fields = cfg.GetArray("instrument.log_mask_fields")
	}

	o := &observer{
		maskKeys: instrument.MaskKeys(fields),
		tracer:   ins.Tracer("http.server"),
	}

	meter := ins.Meter("http.server")

	var err error
	if o.requests, err = meter.Int64Counter("http.server.requests",
		metric.WithDescription("Number of HTTP requests received")); err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}
	if o.duration, err = meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request duration in milliseconds"), metric.WithUnit("ms")); err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}

	return o
}

func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	o := newObserver(cfg, ins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(o.serve(next))
	}
}

func (o *observer) serve(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := matchedRoutePath(r)

		ctx, span := o.tracer.Start(r.Context(), r.Method+" "+route, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		if lockID := httprouter.ParamsFromContext(ctx).ByName("id"); lockID != "" {
			span.SetAttributes(attribute.String("lock.id", lockID))
		}
		if cid := instrument.GetCorrelationID(ctx); cid != "" {
			span.SetAttributes(attribute.String("correlation_id", cid))
		}

		reqBody := peekBody(r)
		slog.InfoContext(ctx, "request received",
			"method", r.Method,
			"path", route,
			"uri", r.RequestURI,
			"headers", o.maskHeaders(r.Header),
			"body", o.maskBody(reqBody),
		)

		capture := &responseCapture{ResponseWriter: w}
		next.ServeHTTP(capture, r.WithContext(ctx))

		status := capture.statusCode()
		elapsed := time.Since(start)
		attrs := []attribute.KeyValue{
			semconv.HTTPRequestMethodKey.String(r.Method),
			semconv.HTTPRouteKey.String(route),
			semconv.HTTPResponseStatusCodeKey.Int(status),
		}

		o.finishSpan(span, capture, status, attrs)
		if o.requests != nil {
			o.requests.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
		if o.duration != nil {
			o.duration.Record(ctx, float64(elapsed.Microseconds())/1000, metric.WithAttributes(attrs...))
		}

		var respBody any = o.maskBody(capture.body.Bytes())
		if capture.capped {
			respBody = map[string]any{"body": respBody, "truncated": true}
		}

		slog.InfoContext(ctx, "response sent",
			"method", r.Method,
			"path", route,
			"status", status,
			"bytes", capture.written,
			"latency_ms", elapsed.Milliseconds(),
			"body", respBody,
		)
	}
}

func (o *observer) finishSpan(span trace.Span, capture *responseCapture, status int, attrs []attribute.KeyValue) {
	span.SetAttributes(attrs...)
	span.SetAttributes(attribute.Int("http.response_content_length", capture.written))

	if capture.err != nil {
		span.RecordError(capture.err)
	}

	switch {
	case status < http.StatusInternalServerError:
		span.SetStatus(codes.Ok, "")
	case capture.err != nil:
		span.SetStatus(codes.Error, capture.err.Error())
	default:
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}

func (o *observer) maskHeaders(h http.Header) http.Header {
	if len(o.maskKeys) == 0 {
		return h
	}

	out := h.Clone()
	for key := range out {
		if _, ok := o.maskKeys[strings.ToLower(key)]; ok {
			out.Set(key, "***")
		}
	}
	return out
}

// maskBody decodes JSON bodies and masks sensitive keys; other bodies are
// logged as text when printable.
func (o *observer) maskBody(body []byte) any {
	return parseAndMaskBody(body, o.maskKeys)
}

func parseAndMaskBody(body []byte, maskKeys map[string]struct{}) any {
	if len(body) == 0 {
		return nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err == nil {
		return instrument.MaskData(decoded, maskKeys)
	}

	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}
	return string(body)
}

// peekBody reads up to maxLoggedBodyBytes of the request body and restores it
// for the handler.
func peekBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}

	head, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}

	return head
}

func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}
