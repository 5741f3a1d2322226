package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return sr
}

func TestSetupDisabled(t *testing.T) {
	tp, err := Setup(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, tp)
}

func TestChatSpanSuccess(t *testing.T) {
	sr := recordSpans(t)

	_, span := StartChatSpan(context.Background(), "azure", "gpt-4.1")
	EndChatSpan(span, 4, 7, nil)

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "chat.completions", ended[0].Name())
	attrs := ended[0].Attributes()
	assert.Contains(t, attrs, attribute.String("llm.provider", "azure"))
	assert.Contains(t, attrs, attribute.String("llm.model", "gpt-4.1"))
	assert.Contains(t, attrs, attribute.Int("llm.output_tokens", 7))
}

func TestChatSpanError(t *testing.T) {
	sr := recordSpans(t)

	_, span := StartChatSpan(context.Background(), "azure", "gpt-4.1")
	EndChatSpan(span, 0, 0, errors.New("slow"))

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "slow", ended[0].Status().Description)
}
