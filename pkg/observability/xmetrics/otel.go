package xmetrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultInstrumentationName = "github.com/omeyang/xremote/xmetrics"

	metricEventTotal = "xremote.event.total"

	attrEvent  = "event"
	attrStatus = "status"
)

type otelConfig struct {
	instrumentationName string
	meterProvider       metric.MeterProvider
}

// Option 定义 OTel Recorder 的配置选项。
type Option func(*otelConfig)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) Option {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider，默认使用全局 provider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// NewOTelRecorder 创建基于 OpenTelemetry 的 Recorder。
func NewOTelRecorder(opts ...Option) (Recorder, error) {
	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)
	total, err := meter.Int64Counter(
		metricEventTotal,
		metric.WithDescription("remoting lifecycle events handled"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xmetrics: create counter failed: %w", err)
	}
	return &otelRecorder{total: total}, nil
}

type otelRecorder struct {
	total metric.Int64Counter
}

// RecordEvent 计数 +1。使用不可取消的 context，调用已取消时仍记录。
func (r *otelRecorder) RecordEvent(ctx context.Context, event string, status Status) {
	if ctx == nil {
		ctx = context.Background()
	}
	r.total.Add(context.WithoutCancel(ctx), 1, metric.WithAttributes(
		attribute.String(attrEvent, event),
		attribute.String(attrStatus, string(status)),
	))
}
