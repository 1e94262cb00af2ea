package xctx

import "errors"

// contextKey 包私有类型，避免与其他包的 context key 冲突。
type contextKey string

var (
	// ErrNilContext 表示传入的 context 为 nil。
	ErrNilContext = errors.New("xctx: nil context")

	// ErrMissingTraceID trace_id 缺失
	ErrMissingTraceID = errors.New("xctx: missing trace_id")

	// ErrMissingSpanID span_id 缺失
	ErrMissingSpanID = errors.New("xctx: missing span_id")

	// ErrMissingInvocationID invocation_id 缺失
	ErrMissingInvocationID = errors.New("xctx: missing invocation_id")
)
