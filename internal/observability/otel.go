package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName  = "github.com/codebypatrickleung/azure-playground"
	ServiceName = "chatform"
)

// Setup installs an OTLP/HTTP tracer provider. An empty url leaves the
// global no-op provider in place and returns nil.
func Setup(ctx context.Context, url string) (*sdktrace.TracerProvider, error) {
	if url == "" {
		return nil, nil
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(url))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp, nil
}

// StartChatSpan starts a client span around one chat completion call.
func StartChatSpan(ctx context.Context, providerName, model string) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, "chat.completions",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.provider", providerName),
			attribute.String("llm.model", model),
		),
	)
}

// EndChatSpan records the outcome of the call and ends span.
func EndChatSpan(span trace.Span, promptTokens, completionTokens int, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.Int("llm.input_tokens", promptTokens),
			attribute.Int("llm.output_tokens", completionTokens),
		)
	}
	span.End()
}
