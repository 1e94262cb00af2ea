package xctx

import (
	"context"
	"log/slog"
	"strconv"
)

// 日志属性 Key 常量（下划线分隔，与 OpenTelemetry 语义约定一致）
const (
	KeyTraceID      = "trace_id"
	KeySpanID       = "span_id"
	KeyInvocationID = "invocation_id"

	traceFieldCount = 3
)

const (
	keyTraceID      = contextKey("xctx:trace_id")
	keySpanID       = contextKey("xctx:span_id")
	keyInvocationID = contextKey("xctx:invocation_id")
)

// =============================================================================
// TraceID / SpanID
// =============================================================================

// WithSpanIDs 同时写入 trace ID 和 span ID。
//
// 两者总是成对变化（激活新的 span 时），因此不提供单独的写入函数。
// 零值同样会被写入，用于在子调用中显式遮蔽上层的 ID。
func WithSpanIDs(ctx context.Context, traceID, spanID uint64) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	ctx = context.WithValue(ctx, keyTraceID, traceID)
	return context.WithValue(ctx, keySpanID, spanID), nil
}

// TraceID 从 context 提取 trace ID，不存在返回 0
func TraceID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	v, _ := ctx.Value(keyTraceID).(uint64)
	return v
}

// SpanID 从 context 提取 span ID，不存在返回 0
func SpanID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	v, _ := ctx.Value(keySpanID).(uint64)
	return v
}

// RequireTraceID 从 context 获取 trace ID，不存在（或为 0）则返回错误。
func RequireTraceID(ctx context.Context) (uint64, error) {
	if ctx == nil {
		return 0, ErrNilContext
	}
	v := TraceID(ctx)
	if v == 0 {
		return 0, ErrMissingTraceID
	}
	return v, nil
}

// RequireSpanID 从 context 获取 span ID，不存在（或为 0）则返回错误。
func RequireSpanID(ctx context.Context) (uint64, error) {
	if ctx == nil {
		return 0, ErrNilContext
	}
	v := SpanID(ctx)
	if v == 0 {
		return 0, ErrMissingSpanID
	}
	return v, nil
}

// =============================================================================
// InvocationID
// =============================================================================

// WithInvocationID 将调用标识注入 context
func WithInvocationID(ctx context.Context, id string) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return context.WithValue(ctx, keyInvocationID, id), nil
}

// InvocationID 从 context 提取调用标识，不存在返回空字符串
func InvocationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(keyInvocationID).(string)
	return v
}

// RequireInvocationID 从 context 获取调用标识，不存在则返回错误。
func RequireInvocationID(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", ErrNilContext
	}
	v := InvocationID(ctx)
	if v == "" {
		return "", ErrMissingInvocationID
	}
	return v, nil
}

// =============================================================================
// slog 集成
// =============================================================================

// AppendTraceAttrs 将 context 中的追踪信息追加到现有切片。
// 零分配热路径：只追加非零字段，ID 以十进制输出。
func AppendTraceAttrs(attrs []slog.Attr, ctx context.Context) []slog.Attr {
	if ctx == nil {
		return attrs
	}
	if v := TraceID(ctx); v != 0 {
		attrs = append(attrs, slog.String(KeyTraceID, strconv.FormatUint(v, 10)))
	}
	if v := SpanID(ctx); v != 0 {
		attrs = append(attrs, slog.String(KeySpanID, strconv.FormatUint(v, 10)))
	}
	if v := InvocationID(ctx); v != "" {
		attrs = append(attrs, slog.String(KeyInvocationID, v))
	}
	return attrs
}

// TraceAttrs 从 context 提取追踪信息，转换为 slog.Attr 切片。
// 都为空时返回 nil。热路径建议使用 AppendTraceAttrs。
func TraceAttrs(ctx context.Context) []slog.Attr {
	attrs := AppendTraceAttrs(make([]slog.Attr, 0, traceFieldCount), ctx)
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
