package config

import (
	"context"
	"net/http"

	"github.com/repomcp/repomcp/internal/repodata"
	"github.com/urfave/negroni"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "repomcp"

var tp *sdktrace.TracerProvider

func setupTraceProvider(ctx context.Context) error {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(Config.OpenTelemetryGrpcEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return err
	}

	tp = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(tracerName),
			semconv.ServiceVersion(BuildVersion),
			attribute.String("repomcp.alias_domain", Config.AliasDomain),
		)),
	)
	otel.SetTracerProvider(tp)

	return nil
}

func ShutdownTraceProvider() error {
	if tp != nil {
		return tp.Shutdown(context.Background())
	}
	return nil
}

/*
ResolveTracingMiddleware opens one span per request, named after the
host the repository is resolved from. The span travels with the request
so AnnotateRepoData can attach the resolution result to it.
*/
type ResolveTracingMiddleware struct {
	tracer trace.Tracer
}

func NewResolveTracingMiddleware() *ResolveTracingMiddleware {
	return &ResolveTracingMiddleware{
		tracer: otel.Tracer(tracerName),
	}
}

func (o *ResolveTracingMiddleware) ServeHTTP(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	ctx, span := o.tracer.Start(r.Context(), "resolve "+r.Host,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			semconv.HTTPMethodKey.String(r.Method),
			semconv.HTTPTargetKey.String(r.URL.RequestURI()),
			semconv.NetHostNameKey.String(r.Host),
		),
	)
	defer span.End()

	next(rw, r.WithContext(ctx))

	if nrw, ok := rw.(negroni.ResponseWriter); ok {
		span.SetAttributes(semconv.HTTPStatusCodeKey.Int(nrw.Status()))
		if nrw.Status() >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(nrw.Status()))
		}
	}
}

// AnnotateRepoData attaches the resolved repository to the request span
func AnnotateRepoData(ctx context.Context, data repodata.RepoData) {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("repo.owner", data.Owner),
		attribute.String("repo.name", data.Repo),
		attribute.String("repo.url_type", string(data.URLType)),
	)
}
