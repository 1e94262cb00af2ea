package xremoting

import (
	"context"

	"github.com/omeyang/xremote/pkg/remoting/xpropagation"
)

//go:generate mockgen -source=tracer.go -destination=mock_tracer_test.go -package=xremoting

// SpanKind span 角色
type SpanKind string

// span 角色取值
const (
	KindClient SpanKind = "client"
	KindServer SpanKind = "server"
)

// SpanContext 远端父 span 的标识
type SpanContext struct {
	TraceID             uint64
	SpanID              uint64
	SamplingPriority    xpropagation.SamplingPriority
	HasSamplingPriority bool
}

// SpanContextFrom 由提取到的传播上下文构造远端父 span 标识
func SpanContextFrom(pc xpropagation.Context) SpanContext {
	p, ok := pc.SamplingPriority()
	return SpanContext{
		TraceID:             pc.TraceID(),
		SpanID:              pc.ParentSpanID(),
		SamplingPriority:    p,
		HasSamplingPriority: ok,
	}
}

// SpanOptions 创建 span 的参数
type SpanOptions struct {
	// Kind span 角色
	Kind SpanKind

	// Resource 资源名
	Resource string

	// Tags 创建时设置的标签
	Tags map[string]string

	// Parent 远端父 span，nil 时以 ctx 中的活跃 span 为父
	Parent *SpanContext

	// NewRoot 忽略 ctx 中的活跃 span，创建根 span（Parent 非 nil 时无效）
	NewRoot bool
}

// Span 追踪运行时的 span
type Span interface {
	TraceID() uint64
	SpanID() uint64
	OperationName() string
	SetTag(key, value string)
	Tag(key string) (string, bool)
	SamplingPriority() (xpropagation.SamplingPriority, bool)
	SetError(err error)
	Finish()
}

// Tracer 追踪运行时。活跃 span 保存在 context.Context 中。
type Tracer interface {
	// StartSpan 创建 span
	StartSpan(ctx context.Context, operation string, opts SpanOptions) (Span, error)

	// Activate 返回以 span 为活跃 span 的 ctx
	Activate(ctx context.Context, span Span) (context.Context, error)

	// ActiveSpan 返回 ctx 中的活跃 span
	ActiveSpan(ctx context.Context) (Span, bool)
}
