package xmetrics

import "context"

// Status 表示一次事件处理的结果。
type Status string

const (
	// StatusOK 处理完成。
	StatusOK Status = "ok"
	// StatusSkipped 未初始化、载荷不匹配或配对失败，处理器未做任何修改。
	StatusSkipped Status = "skipped"
	// StatusError 至少一个步骤失败（已记录日志）。
	StatusError Status = "error"
)

// Recorder 记录事件处理结果。实现必须并发安全且不得阻塞。
type Recorder interface {
	RecordEvent(ctx context.Context, event string, status Status)
}

// NoopRecorder 是空实现。
type NoopRecorder struct{}

// RecordEvent 空实现。
func (NoopRecorder) RecordEvent(context.Context, string, Status) {}
