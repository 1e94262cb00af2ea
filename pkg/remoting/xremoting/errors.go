package xremoting

import "errors"

var (
	// ErrNilTracer 表示 tracer 为 nil
	ErrNilTracer = errors.New("xremoting: nil tracer")

	// ErrNilEventSource 表示事件源为 nil
	ErrNilEventSource = errors.New("xremoting: nil event source")

	// ErrNilHandler 表示订阅的处理器为 nil
	ErrNilHandler = errors.New("xremoting: nil handler")

	// ErrUnknownEventKind 表示未知的事件类型
	ErrUnknownEventKind = errors.New("xremoting: unknown event kind")

	// ErrSubscribe 表示订阅事件失败
	ErrSubscribe = errors.New("xremoting: subscribe failed")

	// ErrTracingDisabled 表示配置关闭了追踪（全局或集成级别），Start 不订阅任何事件
	ErrTracingDisabled = errors.New("xremoting: tracing disabled")

	// ErrInvalidCacheSize 表示资源名缓存容量非法
	ErrInvalidCacheSize = errors.New("xremoting: invalid resource cache size")

	// ErrNoHeader 表示请求没有头部存储（nil 请求或 Header 返回 nil），
	// 处理器记录警告后按无头部继续
	ErrNoHeader = errors.New("xremoting: request has no header")
)

// ErrStepPanicked 表示处理步骤发生 panic（已恢复）
var ErrStepPanicked = errors.New("xremoting: step panicked")

// ErrNilSpan 表示 tracer 返回了 nil span
var ErrNilSpan = errors.New("xremoting: tracer returned nil span")
