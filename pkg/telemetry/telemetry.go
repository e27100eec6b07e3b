// Package telemetry installs the process-wide OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Options struct {
	ServiceName string
	// Endpoint is the OTLP/HTTP collector host:port. Empty keeps spans in
	// process so log lines still carry trace ids.
	Endpoint string
	Insecure bool
}

// Setup registers a tracer provider and the W3C trace-context propagator.
// The returned func flushes and stops the provider.
func Setup(ctx context.Context, opts Options) (shutdown func(context.Context) error, err error) {
	res := resource.NewSchemaless(attribute.String("service.name", opts.ServiceName))

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if opts.Endpoint != "" {
		exOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(opts.Endpoint)}
		if opts.Insecure {
			exOpts = append(exOpts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(ctx, exOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown, nil
}
