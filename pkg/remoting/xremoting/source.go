package xremoting

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/omeyang/xremote/pkg/observability/xlog"
)

// EventKind 调用生命周期事件类型
type EventKind int

// 事件类型
const (
	ClientSendRequest EventKind = iota + 1
	ClientReceiveResponse
	ServerReceiveRequest
	ServerSendResponse
)

// String 返回事件名称
func (k EventKind) String() string {
	switch k {
	case ClientSendRequest:
		return "client_send_request"
	case ClientReceiveResponse:
		return "client_receive_response"
	case ServerReceiveRequest:
		return "server_receive_request"
	case ServerSendResponse:
		return "server_send_response"
	default:
		return fmt.Sprintf("event_kind(%d)", int(k))
	}
}

// Valid 是否为已知事件类型
func (k EventKind) Valid() bool {
	return k >= ClientSendRequest && k <= ServerSendResponse
}

// Handler 事件处理器，返回（可能更新后的）调用 ctx
type Handler func(ctx context.Context, payload any) context.Context

// EventSource 宿主提供的事件订阅入口
type EventSource interface {
	Subscribe(kind EventKind, h Handler) error
}

// =============================================================================
// Dispatcher
// =============================================================================

// DispatcherOption Dispatcher 选项
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger 设置处理器 panic 时的日志输出
func WithDispatcherLogger(l xlog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// Dispatcher 进程内事件源，由宿主传输层在调用生命周期中触发事件。
// Subscribe 与 Fire 可以并发调用。
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[EventKind][]Handler
	logger   xlog.Logger
}

var _ EventSource = (*Dispatcher)(nil)

// NewDispatcher 创建 Dispatcher
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[EventKind][]Handler),
		logger:   xlog.Global(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Subscribe 追加事件处理器
func (d *Dispatcher) Subscribe(kind EventKind, h Handler) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownEventKind, int(kind))
	}
	if h == nil {
		return ErrNilHandler
	}
	d.mu.Lock()
	d.handlers[kind] = append(d.handlers[kind], h)
	d.mu.Unlock()
	return nil
}

// Fire 按订阅顺序执行处理器，每个处理器接收上一个返回的 ctx。
// panic 的处理器被恢复并记录，后续处理器沿用其输入 ctx。
func (d *Dispatcher) Fire(ctx context.Context, kind EventKind, payload any) context.Context {
	d.mu.RLock()
	handlers := d.handlers[kind]
	d.mu.RUnlock()

	for _, h := range handlers {
		ctx = d.invoke(ctx, kind, h, payload)
	}
	return ctx
}

func (d *Dispatcher) invoke(ctx context.Context, kind EventKind, h Handler, payload any) (out context.Context) {
	out = ctx
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error(ctx, "event handler panicked",
				xlog.Event(kind.String()), slog.Any("panic", r))
			out = ctx
		}
	}()
	if next := h(ctx, payload); next != nil {
		out = next
	}
	return out
}
