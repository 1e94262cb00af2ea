package xotel

import (
	"context"
	"encoding/binary"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/xremote/pkg/context/xctx"
	"github.com/omeyang/xremote/pkg/remoting/xpropagation"
	"github.com/omeyang/xremote/pkg/remoting/xremoting"
)

const (
	// DefaultInstrumentationName 默认 instrumentation 名称
	DefaultInstrumentationName = "github.com/omeyang/xremote/pkg/remoting/xremoting"

	// AttrResource 资源名属性
	AttrResource = "resource.name"
)

// ErrForeignSpan 表示 span 不是由本包创建
var ErrForeignSpan = errors.New("xotel: span was not created by this tracer")

type options struct {
	provider trace.TracerProvider
	name     string
}

// Option Tracer 选项
type Option func(*options)

// WithTracerProvider 设置 TracerProvider，默认使用 otel.GetTracerProvider()
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.provider = tp
		}
	}
}

// WithInstrumentationName 设置 instrumentation 名称
func WithInstrumentationName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// Tracer 基于 OpenTelemetry 的 xremoting.Tracer
type Tracer struct {
	tracer trace.Tracer
}

var _ xremoting.Tracer = (*Tracer)(nil)

// New 创建 Tracer。
//
// 传播只携带 64 位 trace id，TracerProvider 必须生成高 64 位为零的 trace id
// （NewTracerProvider 已配置 NewIDGenerator；自建 provider 需加上
// sdktrace.WithIDGenerator(NewIDGenerator())），否则根 span 与其远端子 span
// 不在同一条 OTel trace 中。
func New(opts ...Option) *Tracer {
	o := options{name: DefaultInstrumentationName}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.provider == nil {
		o.provider = otel.GetTracerProvider()
	}
	return &Tracer{tracer: o.provider.Tracer(o.name)}
}

type activeSpanKey struct{}

// StartSpan 创建 span。
//
// opts.Parent 非 nil 时作为远端父 span；opts.NewRoot 时创建根 span；
// 否则以 ctx 中的活跃 span 为父，并继承其采样优先级与 origin。
func (t *Tracer) StartSpan(ctx context.Context, operation string, opts xremoting.SpanOptions) (xremoting.Span, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		startOpts   []trace.SpanStartOption
		priority    xpropagation.SamplingPriority
		hasPriority bool
		inherited   *span
	)
	startOpts = append(startOpts, trace.WithSpanKind(spanKind(opts.Kind)))

	switch {
	case opts.Parent != nil:
		ctx = trace.ContextWithRemoteSpanContext(ctx, remoteSpanContext(*opts.Parent))
		priority, hasPriority = opts.Parent.SamplingPriority, opts.Parent.HasSamplingPriority
	case opts.NewRoot:
		startOpts = append(startOpts, trace.WithNewRoot())
	default:
		if s, ok := activeSpan(ctx); ok {
			inherited = s
			priority, hasPriority = s.SamplingPriority()
		}
	}

	tags := make(map[string]string, len(opts.Tags)+2)
	for k, v := range opts.Tags {
		tags[k] = v
	}
	if inherited != nil {
		if origin, ok := inherited.Tag(xremoting.TagOrigin); ok {
			if _, set := tags[xremoting.TagOrigin]; !set {
				tags[xremoting.TagOrigin] = origin
			}
		}
	}
	if opts.Resource != "" {
		tags[AttrResource] = opts.Resource
	}
	startOpts = append(startOpts, trace.WithAttributes(stringAttrs(tags)...))

	_, otelSpan := t.tracer.Start(ctx, operation, startOpts...)

	if !hasPriority {
		priority = xpropagation.AutoReject
		if otelSpan.SpanContext().IsSampled() {
			priority = xpropagation.AutoKeep
		}
	}

	return newSpan(otelSpan, operation, tags, priority), nil
}

// Activate 返回以 s 为活跃 span 的 ctx
func (t *Tracer) Activate(ctx context.Context, s xremoting.Span) (context.Context, error) {
	sp, ok := s.(*span)
	if !ok || sp == nil {
		return ctx, ErrForeignSpan
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, activeSpanKey{}, sp)
	ctx = trace.ContextWithSpan(ctx, sp.otel)
	return xctx.WithSpanIDs(ctx, sp.TraceID(), sp.SpanID())
}

// ActiveSpan 返回 ctx 中的活跃 span
func (t *Tracer) ActiveSpan(ctx context.Context) (xremoting.Span, bool) {
	s, ok := activeSpan(ctx)
	if !ok {
		return nil, false
	}
	return s, true
}

func activeSpan(ctx context.Context) (*span, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(activeSpanKey{}).(*span)
	return s, ok && s != nil
}

// =============================================================================
// 标识转换
// =============================================================================

// TraceIDFrom 由 64 位 trace id 构造 OTel trace id（高 64 位为零）
func TraceIDFrom(id uint64) trace.TraceID {
	var tid trace.TraceID
	binary.BigEndian.PutUint64(tid[8:], id)
	return tid
}

// SpanIDFrom 由 64 位 span id 构造 OTel span id
func SpanIDFrom(id uint64) trace.SpanID {
	var sid trace.SpanID
	binary.BigEndian.PutUint64(sid[:], id)
	return sid
}

// LowTraceID 返回 OTel trace id 的低 64 位
func LowTraceID(tid trace.TraceID) uint64 {
	return binary.BigEndian.Uint64(tid[8:])
}

// SpanIDValue 返回 OTel span id 的 64 位值
func SpanIDValue(sid trace.SpanID) uint64 {
	return binary.BigEndian.Uint64(sid[:])
}

func remoteSpanContext(p xremoting.SpanContext) trace.SpanContext {
	// 设计决策: 未携带优先级时按保留处理，上游既然传播了上下文就期望链路被采样。
	flags := trace.FlagsSampled
	if p.HasSamplingPriority && !p.SamplingPriority.Keep() {
		flags = 0
	}
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    TraceIDFrom(p.TraceID),
		SpanID:     SpanIDFrom(p.SpanID),
		TraceFlags: flags,
		Remote:     true,
	})
}

func spanKind(k xremoting.SpanKind) trace.SpanKind {
	switch k {
	case xremoting.KindClient:
		return trace.SpanKindClient
	case xremoting.KindServer:
		return trace.SpanKindServer
	default:
		return trace.SpanKindInternal
	}
}

func stringAttrs(tags map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(tags))
	for k, v := range tags {
		attrs = append(attrs, attribute.String(k, v))
	}
	return attrs
}
