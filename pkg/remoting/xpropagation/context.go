package xpropagation

import "strconv"

// SamplingPriority 采样优先级，随调用链传播的采样决策
type SamplingPriority int32

// 采样优先级取值
const (
	// UserReject 用户显式丢弃
	UserReject SamplingPriority = -1
	// AutoReject 采样器丢弃
	AutoReject SamplingPriority = 0
	// AutoKeep 采样器保留
	AutoKeep SamplingPriority = 1
	// UserKeep 用户显式保留
	UserKeep SamplingPriority = 2
)

// String 返回优先级名称，未知值按数字输出
func (p SamplingPriority) String() string {
	switch p {
	case UserReject:
		return "user_reject"
	case AutoReject:
		return "auto_reject"
	case AutoKeep:
		return "auto_keep"
	case UserKeep:
		return "user_keep"
	default:
		return strconv.FormatInt(int64(p), 10)
	}
}

// Keep 是否保留该 trace
func (p SamplingPriority) Keep() bool {
	return p > 0
}

// Context 追踪传播上下文，构造后不可修改，可用 == 比较
type Context struct {
	traceID      uint64
	parentSpanID uint64
	priority     SamplingPriority
	hasPriority  bool
	origin       string
}

// Option 上下文构造选项
type Option func(*Context)

// WithSamplingPriority 设置采样优先级
func WithSamplingPriority(p SamplingPriority) Option {
	return func(c *Context) {
		c.priority = p
		c.hasPriority = true
	}
}

// WithOrigin 设置来源标记，空字符串等同于未设置
func WithOrigin(origin string) Option {
	return func(c *Context) {
		c.origin = origin
	}
}

// New 创建传播上下文
func New(traceID, parentSpanID uint64, opts ...Option) Context {
	c := Context{traceID: traceID, parentSpanID: parentSpanID}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// TraceID 返回 trace id，0 表示不存在
func (c Context) TraceID() uint64 { return c.traceID }

// ParentSpanID 返回父 span id，0 表示不存在
func (c Context) ParentSpanID() uint64 { return c.parentSpanID }

// SamplingPriority 返回采样优先级
func (c Context) SamplingPriority() (SamplingPriority, bool) {
	return c.priority, c.hasPriority
}

// Origin 返回来源标记
func (c Context) Origin() (string, bool) {
	return c.origin, c.origin != ""
}

// IsValid 两个 ID 均非零时返回 true
func (c Context) IsValid() bool {
	return c.traceID != 0 && c.parentSpanID != 0
}
