// Package otel builds the optional OpenTelemetry log and metric providers.
// Logs reach them through the otelslog bridge; metrics through the global
// meter provider.
package otel

import (
	"context"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// DefaultMetricInterval is used when Config.MetricInterval is zero.
const DefaultMetricInterval = 30 * time.Second

var ErrNoLogSink = errors.New("OTel enabled but no log writer or endpoint configured")

type Config struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	// LogWriter receives pretty-printed log records, usually the session log.
	LogWriter io.Writer
	// Endpoint is an optional OTLP/HTTP collector (host:port).
	Endpoint string
	Insecure bool

	Metrics        bool
	MetricWriter   io.Writer
	MetricInterval time.Duration
}

type component interface {
	ForceFlush(context.Context) error
	Shutdown(context.Context) error
}

// Provider owns the SDK providers that must be flushed before exit. A
// disabled Provider is valid and does nothing.
type Provider struct {
	config        Config
	logProvider   *sdklog.LoggerProvider
	meterProvider *sdkmetric.MeterProvider
}

// New builds the providers described by cfg. When metrics are enabled the
// meter provider becomes the global one.
func New(cfg Config) (*Provider, error) {
	p := &Provider{config: cfg}
	if !cfg.Enabled {
		return p, nil
	}

	ctx := context.Background()
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create resource")
	}

	exporters, err := logExporters(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}
	for _, exp := range exporters {
		opts = append(opts, sdklog.WithProcessor(
			sdklog.NewBatchProcessor(exp, sdklog.WithExportTimeout(cfg.BatchTimeout))))
	}
	p.logProvider = sdklog.NewLoggerProvider(opts...)

	if cfg.Metrics {
		if p.meterProvider, err = newMeterProvider(cfg, res); err != nil {
			return nil, err
		}
		otel.SetMeterProvider(p.meterProvider)
	}
	return p, nil
}

func logExporters(ctx context.Context, cfg Config) ([]sdklog.Exporter, error) {
	var out []sdklog.Exporter
	if cfg.LogWriter != nil {
		exp, err := stdoutlog.New(stdoutlog.WithWriter(cfg.LogWriter), stdoutlog.WithPrettyPrint())
		if err != nil {
			return nil, errors.Wrap(err, "failed to create file log exporter")
		}
		out = append(out, exp)
	}
	if cfg.Endpoint != "" {
		opts := []otlploghttp.Option{otlploghttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlploghttp.WithInsecure())
		}
		exp, err := otlploghttp.New(ctx, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create OTLP log exporter")
		}
		out = append(out, exp)
	}
	if len(out) == 0 {
		return nil, ErrNoLogSink
	}
	return out, nil
}

func newMeterProvider(cfg Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	if cfg.MetricWriter == nil {
		return nil, errors.New("OTel metrics enabled but no metric writer configured")
	}
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(cfg.MetricWriter), stdoutmetric.WithPrettyPrint())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create metric exporter")
	}
	interval := cfg.MetricInterval
	if interval <= 0 {
		interval = DefaultMetricInterval
	}
	reader := sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval))
	return sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader)), nil
}

// LoggerProvider is nil while OTel is disabled.
func (p *Provider) LoggerProvider() *sdklog.LoggerProvider {
	return p.logProvider
}

func (p *Provider) Enabled() bool {
	return p.config.Enabled
}

// Flush exports pending log records and metric readings.
func (p *Provider) Flush(ctx context.Context) error {
	return p.each(func(name string, c component) error {
		return errors.Wrapf(c.ForceFlush(ctx), "%s flush failed", name)
	})
}

// Shutdown flushes and stops every provider. The Provider is unusable
// afterwards.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.each(func(name string, c component) error {
		return errors.Wrapf(c.Shutdown(ctx), "%s shutdown failed", name)
	})
}

func (p *Provider) each(fn func(string, component) error) error {
	var err error
	if p.logProvider != nil {
		err = errors.CombineErrors(err, fn("log", p.logProvider))
	}
	if p.meterProvider != nil {
		err = errors.CombineErrors(err, fn("metric", p.meterProvider))
	}
	return err
}
