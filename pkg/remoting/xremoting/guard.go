package xremoting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omeyang/xremote/pkg/observability/xlog"
	"github.com/omeyang/xremote/pkg/observability/xmetrics"
)

// handling 单次事件处理。每个步骤独立执行，失败只记录日志，
// 最终状态由 done/skip 上报。
type handling struct {
	in     *Instrumentation
	ctx    context.Context
	event  EventKind
	failed bool
}

func (in *Instrumentation) begin(ctx context.Context, event EventKind) *handling {
	return &handling{in: in, ctx: ctx, event: event}
}

// step 执行一个步骤，错误或 panic 时记录日志并返回 false
func (h *handling) step(name string, fn func() error) bool {
	err := safely(fn)
	if err == nil {
		return true
	}
	h.failed = true
	quietly(func() {
		h.in.logger.Error(h.ctx, "tracing step failed",
			xlog.Event(h.event.String()), xlog.Operation(name), xlog.Err(err))
	})
	return false
}

// warn 记录警告，不视为失败
func (h *handling) warn(msg string, attrs ...slog.Attr) {
	quietly(func() {
		h.in.logger.Warn(h.ctx, msg, append(attrs, xlog.Event(h.event.String()))...)
	})
}

// skip 上报 skipped，已有步骤失败时上报 error
func (h *handling) skip() {
	status := xmetrics.StatusSkipped
	if h.failed {
		status = xmetrics.StatusError
	}
	h.record(status)
}

// done 上报 ok 或 error
func (h *handling) done() {
	status := xmetrics.StatusOK
	if h.failed {
		status = xmetrics.StatusError
	}
	h.record(status)
}

// record 上报结果。Recorder 由调用方提供，其 panic 不能逃出事件处理器。
func (h *handling) record(status xmetrics.Status) {
	quietly(func() {
		h.in.recorder.RecordEvent(h.ctx, h.event.String(), status)
	})
}

func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrStepPanicked, r)
		}
	}()
	return fn()
}

// quietly 执行日志或上报回调并丢弃其 panic，
// 此时已无可用的日志通道记录该 panic。
func quietly(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
