package xpropagation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omeyang/xremote/pkg/observability/xlog"
	"github.com/omeyang/xremote/pkg/remoting/xheader"
)

// 头部名称
const (
	HeaderTraceID          = "x-datadog-trace-id"
	HeaderParentID         = "x-datadog-parent-id"
	HeaderSamplingPriority = "x-datadog-sampling-priority"
	HeaderOrigin           = "x-datadog-origin"
)

// Codec 追踪上下文编解码器，持有日志输出目标。零值使用全局 Logger。
type Codec struct {
	Logger xlog.Logger
}

var defaultCodec = Codec{}

// Inject 使用全局 Logger 注入，见 [Codec.Inject]
func Inject(ctx context.Context, pc Context, store xheader.Store) int {
	return defaultCodec.Inject(ctx, pc, store)
}

// Extract 使用全局 Logger 提取，见 [Codec.Extract]
func Extract(ctx context.Context, store xheader.Store) (Context, bool) {
	return defaultCodec.Extract(ctx, store)
}

// Inject 将 pc 写入 store，返回实际写入的头部数量。
//
// 任一 ID 为零或 store 为 nil 时不写入。每个头部仅在不存在时写入，
// 已有的值不会被覆盖。第一次存储失败（包括 panic）后停止写入并记录日志。
func (c Codec) Inject(ctx context.Context, pc Context, store xheader.Store) (written int) {
	if !pc.IsValid() || store == nil {
		return 0
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger().Error(ctx, "inject trace context panicked",
				xlog.Operation("inject"), slog.Any("panic", r), slog.Int("written", written))
		}
	}()

	add := func(name string, value func() []byte) bool {
		added, err := xheader.TryAdd(store, name, value)
		if err != nil {
			c.logger().Error(ctx, "inject trace context failed",
				xlog.Operation("inject"), xlog.Err(err), slog.Int("written", written))
			return false
		}
		if added {
			written++
		}
		return true
	}

	if !add(HeaderTraceID, func() []byte { return xheader.EncodeUint64(pc.traceID) }) {
		return written
	}
	if !add(HeaderParentID, func() []byte { return xheader.EncodeUint64(pc.parentSpanID) }) {
		return written
	}
	if pc.hasPriority {
		if !add(HeaderSamplingPriority, func() []byte { return xheader.EncodeInt32(int32(pc.priority)) }) {
			return written
		}
	}
	if pc.origin != "" {
		add(HeaderOrigin, func() []byte { return []byte(pc.origin) })
	}
	return written
}

// Extract 从 store 读取追踪上下文。
//
// trace id 缺失或为零时直接返回不存在，不再读取其它头部；parent id 同理。
// 两者都存在时才读取可选的采样优先级与 origin，宽度不符的可选字段视为不存在。
// 存储 panic 会被恢复、记录并视为不存在。
func (c Codec) Extract(ctx context.Context, store xheader.Store) (pc Context, ok bool) {
	if store == nil {
		return Context{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger().Error(ctx, "extract trace context panicked",
				xlog.Operation("extract"), xlog.Err(fmt.Errorf("%v", r)))
			pc, ok = Context{}, false
		}
	}()

	traceID, found := xheader.Uint64(store, HeaderTraceID)
	if !found || traceID == 0 {
		return Context{}, false
	}
	parentID, found := xheader.Uint64(store, HeaderParentID)
	if !found || parentID == 0 {
		return Context{}, false
	}

	var opts []Option
	if p, found := xheader.Int32(store, HeaderSamplingPriority); found {
		opts = append(opts, WithSamplingPriority(SamplingPriority(p)))
	}
	if origin, found := xheader.String(store, HeaderOrigin); found {
		opts = append(opts, WithOrigin(origin))
	}
	return New(traceID, parentID, opts...), true
}

func (c Codec) logger() xlog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return xlog.Global()
}
