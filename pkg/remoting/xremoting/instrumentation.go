package xremoting

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/omeyang/xremote/pkg/config/xconf"
	"github.com/omeyang/xremote/pkg/observability/xlog"
	"github.com/omeyang/xremote/pkg/observability/xmetrics"
	"github.com/omeyang/xremote/pkg/remoting/xpropagation"
)

// =============================================================================
// 选项
// =============================================================================

type options struct {
	settings          *xconf.Settings
	logger            xlog.Logger
	recorder          xmetrics.Recorder
	integration       string
	resourceCacheSize int
}

// Option Instrumentation 选项
type Option func(*options)

// WithSettings 设置追踪配置，nil 使用 xconf.DefaultSettings()
func WithSettings(s *xconf.Settings) Option {
	return func(o *options) {
		if s != nil {
			o.settings = s
		}
	}
}

// WithLogger 设置日志输出，默认使用全局 Logger
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder 设置事件处理结果上报，默认不上报
func WithRecorder(r xmetrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithIntegration 设置集成名称（配置中 integrations 的键），默认 ServiceRemoting
func WithIntegration(name string) Option {
	return func(o *options) {
		if name != "" {
			o.integration = name
		}
	}
}

// WithResourceCacheSize 设置资源名缓存容量，默认 DefaultResourceCacheSize
func WithResourceCacheSize(n int) Option {
	return func(o *options) {
		o.resourceCacheSize = n
	}
}

// =============================================================================
// Instrumentation
// =============================================================================

// Instrumentation 订阅调用生命周期事件并维护 span。
//
// 状态只有 未初始化 → 已启动 一个方向的转换，不支持停止。
// 所有处理器在 subscribed 置位前都是空操作。
type Instrumentation struct {
	tracer      Tracer
	settings    *xconf.Settings
	integration string
	logger      xlog.Logger
	recorder    xmetrics.Recorder
	codec       xpropagation.Codec
	namer       *namer

	started    atomic.Bool
	subscribed atomic.Bool

	// 在 Start 中写入一次，subscribed 置位之后只读
	clientRate rateTag
	serverRate rateTag
}

// New 创建 Instrumentation
func New(tracer Tracer, opts ...Option) (*Instrumentation, error) {
	if tracer == nil {
		return nil, ErrNilTracer
	}

	o := options{
		settings:          xconf.DefaultSettings(),
		logger:            xlog.Global(),
		recorder:          xmetrics.NoopRecorder{},
		integration:       DefaultIntegration,
		resourceCacheSize: DefaultResourceCacheSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if err := o.settings.Validate(); err != nil {
		return nil, err
	}
	if o.resourceCacheSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCacheSize, o.resourceCacheSize)
	}
	n, err := newNamer(o.resourceCacheSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCacheSize, err)
	}

	logger := o.logger.With(xlog.Component("xremoting"))
	return &Instrumentation{
		tracer:      tracer,
		settings:    o.settings,
		integration: o.integration,
		logger:      logger,
		recorder:    o.recorder,
		codec:       xpropagation.Codec{Logger: logger},
		namer:       n,
	}, nil
}

// Start 订阅四个生命周期事件，只有第一次调用生效。
//
// 后续调用（包括并发调用）直接返回 nil。配置关闭追踪时返回 ErrTracingDisabled，
// 此后也不会再尝试订阅。订阅失败时返回错误，已订阅的处理器保持空操作。
func (in *Instrumentation) Start(ctx context.Context, src EventSource) error {
	if src == nil {
		return ErrNilEventSource
	}
	if !in.started.CompareAndSwap(false, true) {
		return nil
	}

	if !in.settings.IntegrationEnabled(in.integration) {
		in.logger.Info(ctx, "tracing disabled, not subscribing to remoting events",
			slog.String("integration", in.integration))
		return ErrTracingDisabled
	}

	in.clientRate = resolveRateTag(in.settings, in.integration, KindClient)
	in.serverRate = resolveRateTag(in.settings, in.integration, KindServer)

	subscriptions := []struct {
		kind EventKind
		h    Handler
	}{
		{ClientSendRequest, in.OnClientSendRequest},
		{ClientReceiveResponse, in.OnClientReceiveResponse},
		{ServerReceiveRequest, in.OnServerReceiveRequest},
		{ServerSendResponse, in.OnServerSendResponse},
	}
	for _, sub := range subscriptions {
		if err := src.Subscribe(sub.kind, sub.h); err != nil {
			in.logger.Error(ctx, "subscribe to remoting event failed",
				xlog.Event(sub.kind.String()), xlog.Err(err))
			return fmt.Errorf("%w: %s: %w", ErrSubscribe, sub.kind, err)
		}
	}

	in.subscribed.Store(true)
	in.logger.Info(ctx, "remoting tracing started",
		slog.String("integration", in.integration),
		slog.String("client_analytics_rate", in.clientRate.value),
		slog.String("server_analytics_rate", in.serverRate.value))
	return nil
}

// Started 是否已调用过 Start（无论成功与否）
func (in *Instrumentation) Started() bool {
	return in.started.Load()
}

// Active 是否已完成全部订阅
func (in *Instrumentation) Active() bool {
	return in.subscribed.Load()
}

func (in *Instrumentation) rate(kind SpanKind) rateTag {
	if kind == KindServer {
		return in.serverRate
	}
	return in.clientRate
}
