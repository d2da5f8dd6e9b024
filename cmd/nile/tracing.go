// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"os"

	"github.com/blinklabs-io/nile/internal/config"
	"github.com/blinklabs-io/nile/internal/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// setupTracing installs a global tracer provider when tracing is enabled.
// The returned shutdown func flushes pending spans and is never nil.
func setupTracing(
	ctx context.Context,
	cfg *config.Config,
) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Tracing {
		return noop, nil
	}
	var exporter sdktrace.SpanExporter
	var err error
	if cfg.TracingStdout {
		exporter, err = stdouttrace.New(
			stdouttrace.WithWriter(os.Stderr),
			stdouttrace.WithPrettyPrint(),
		)
	} else {
		// Endpoint and headers come from OTEL_EXPORTER_OTLP_* env vars
		exporter, err = otlptracehttp.New(ctx)
	}
	if err != nil {
		return noop, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	res, err := resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(programName),
			semconv.ServiceVersion(version.GetVersionString()),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("failed to create trace resource: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
