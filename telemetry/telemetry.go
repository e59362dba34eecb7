package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Config holds the telemetry configuration.
type Config struct {
	// ServiceName is the name of the service (e.g., "verdict").
	ServiceName string

	// ServiceVersion is the version of the service.
	ServiceVersion string

	// Environment is the deployment environment (e.g., "production").
	Environment string

	// OTLPEndpoint is the OTLP exporter endpoint for traces.
	// Leave empty to disable trace export.
	OTLPEndpoint string

	// SamplingRate is the trace sampling rate (0.0-1.0).
	SamplingRate float64

	// Enabled determines if telemetry is active.
	Enabled bool
}

// DefaultConfig returns a default telemetry configuration.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "verdict",
		ServiceVersion: "1.0.0",
		Environment:    "development",
		SamplingRate:   1.0,
		Enabled:        true,
	}
}

// Provider manages OpenTelemetry tracer and meter providers.
type Provider struct {
	config         Config
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	tracer         trace.Tracer
	meter          metric.Meter

	// Metrics
	decisionCounter    metric.Int64Counter
	relationCounter    metric.Int64Counter
	evalDuration       metric.Float64Histogram
	registeredPolicies metric.Int64UpDownCounter
}

// NewProvider creates a new telemetry provider. Metrics are exposed via a
// Prometheus reader; scrape them with promhttp on the embedding service.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{config: cfg}, nil
	}

	p := &Provider{config: cfg}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	if err := p.setupTracing(res); err != nil {
		return nil, err
	}

	if err := p.setupMetrics(res); err != nil {
		return nil, err
	}

	if err := p.initMetrics(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Provider) setupTracing(res *resource.Resource) error {
	var sampler sdktrace.Sampler
	if p.config.SamplingRate >= 1.0 {
		sampler = sdktrace.AlwaysSample()
	} else if p.config.SamplingRate <= 0 {
		sampler = sdktrace.NeverSample()
	} else {
		sampler = sdktrace.TraceIDRatioBased(p.config.SamplingRate)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sampler),
		sdktrace.WithResource(res),
	}

	if p.config.OTLPEndpoint != "" {
		exporter, err := otlptracegrpc.New(
			context.Background(),
			otlptracegrpc.WithEndpoint(p.config.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return err
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	p.tracerProvider = sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(p.tracerProvider)

	p.tracer = p.tracerProvider.Tracer(p.config.ServiceName)

	return nil
}

func (p *Provider) setupMetrics(res *resource.Resource) error {
	exporter, err := prometheus.New()
	if err != nil {
		return err
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(p.meterProvider)

	p.meter = p.meterProvider.Meter(p.config.ServiceName)

	return nil
}

func (p *Provider) initMetrics() error {
	var err error

	p.decisionCounter, err = p.meter.Int64Counter(
		"verdict.decisions.total",
		metric.WithDescription("Total number of access decisions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	p.relationCounter, err = p.meter.Int64Counter(
		"verdict.relation_checks.total",
		metric.WithDescription("Total number of relationship lookups"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	p.evalDuration, err = p.meter.Float64Histogram(
		"verdict.evaluation.duration",
		metric.WithDescription("Policy evaluation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	p.registeredPolicies, err = p.meter.Int64UpDownCounter(
		"verdict.policies.registered",
		metric.WithDescription("Number of policies registered with checkers"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Shutdown gracefully shuts down the telemetry providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Tracer returns the tracer instance.
func (p *Provider) Tracer() trace.Tracer {
	if p.tracer == nil {
		return otel.Tracer(p.config.ServiceName)
	}
	return p.tracer
}

// Meter returns the meter instance.
func (p *Provider) Meter() metric.Meter {
	if p.meter == nil {
		return otel.Meter(p.config.ServiceName)
	}
	return p.meter
}

// ---- Metric Recording Methods ----

// RecordDecision records one access decision.
func (p *Provider) RecordDecision(ctx context.Context, policyName string, granted bool, duration time.Duration) {
	status := "denied"
	if granted {
		status = "granted"
	}
	if p.decisionCounter != nil {
		p.decisionCounter.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("decision", status),
				attribute.String("policy", policyName),
			),
		)
	}
	if p.evalDuration != nil {
		p.evalDuration.Record(ctx, duration.Seconds(),
			metric.WithAttributes(
				attribute.String("policy", policyName),
			),
		)
	}
}

// RecordRelationCheck records one relationship lookup.
func (p *Provider) RecordRelationCheck(ctx context.Context, relation string, held bool) {
	if p.relationCounter == nil {
		return
	}
	p.relationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("relation", relation),
			attribute.Bool("held", held),
		),
	)
}

// PolicyRegistered increments the registered policy count.
func (p *Provider) PolicyRegistered(ctx context.Context, checker string) {
	if p.registeredPolicies == nil {
		return
	}
	p.registeredPolicies.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("checker", checker),
		),
	)
}
