package xremoting

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/omeyang/xremote/pkg/context/xctx"
	"github.com/omeyang/xremote/pkg/observability/xlog"
	"github.com/omeyang/xremote/pkg/remoting/xpropagation"
)

// =============================================================================
// 事件处理器
// =============================================================================

// OnClientSendRequest 创建 client span，把它的标识注入请求头部并激活。
// 返回的 ctx 携带该 span，宿主需在 ClientReceiveResponse 中传回。
func (in *Instrumentation) OnClientSendRequest(ctx context.Context, payload any) context.Context {
	if !in.subscribed.Load() {
		return ctx
	}
	h := in.begin(ctx, ClientSendRequest)

	ev, header, ok := h.request(payload)
	if !ok {
		h.skip()
		return ctx
	}

	span, ok := h.startSpan(KindClient, ev, header, nil)
	if !ok {
		h.done()
		return ctx
	}

	if header != nil {
		h.step("inject", func() error {
			pc := in.clientContext(span)
			in.codec.Inject(ctx, pc, header)
			return nil
		})
	}

	out := h.activate(span, header)
	h.done()
	return out
}

// OnClientReceiveResponse 结束 ctx 中的 client span
func (in *Instrumentation) OnClientReceiveResponse(ctx context.Context, payload any) context.Context {
	if !in.subscribed.Load() {
		return ctx
	}
	in.finishSpan(in.begin(ctx, ClientReceiveResponse), KindClient, payload)
	return ctx
}

// OnServerReceiveRequest 从请求头部提取上下文，创建 server span 并激活。
// 提取到上下文时作为其子 span，否则为根 span。
func (in *Instrumentation) OnServerReceiveRequest(ctx context.Context, payload any) context.Context {
	if !in.subscribed.Load() {
		return ctx
	}
	h := in.begin(ctx, ServerReceiveRequest)

	ev, header, ok := h.request(payload)
	if !ok {
		h.skip()
		return ctx
	}

	var (
		pc     xpropagation.Context
		parent *SpanContext
	)
	if header != nil {
		h.step("extract", func() error {
			if extracted, found := in.codec.Extract(ctx, header); found {
				pc = extracted
				sc := SpanContextFrom(extracted)
				parent = &sc
			}
			return nil
		})
	}

	span, ok := h.startSpan(KindServer, ev, header, parent)
	if !ok {
		h.done()
		return ctx
	}

	if origin, has := pc.Origin(); has {
		h.step("set_origin", func() error {
			span.SetTag(TagOrigin, origin)
			return nil
		})
	}

	out := h.activate(span, header)
	h.done()
	return out
}

// OnServerSendResponse 结束 ctx 中的 server span
func (in *Instrumentation) OnServerSendResponse(ctx context.Context, payload any) context.Context {
	if !in.subscribed.Load() {
		return ctx
	}
	in.finishSpan(in.begin(ctx, ServerSendResponse), KindServer, payload)
	return ctx
}

// =============================================================================
// 步骤
// =============================================================================

// request 适配请求事件并读取头部。适配失败返回 ok=false；
// 头部读取失败只记录日志，header 为 nil。
func (h *handling) request(payload any) (ev RequestEvent, header RequestHeader, ok bool) {
	ev, err := Adapt[RequestEvent](payload)
	if err != nil {
		h.warn("unexpected event payload", slog.String("error", err.Error()))
		return ev, nil, false
	}

	if ev.Request == nil {
		h.warn("cannot access request headers: nil request", xlog.Err(ErrNoHeader))
		return ev, nil, true
	}
	h.step("get_header", func() error {
		hdr, err := ev.Request.Header()
		if err != nil {
			return err
		}
		header = hdr
		return nil
	})
	if header == nil && !h.failed {
		h.warn("cannot access request headers", xlog.Err(ErrNoHeader))
	}
	return ev, header, true
}

// startSpan 创建 span，名称与标签在创建时确定
func (h *handling) startSpan(kind SpanKind, ev RequestEvent, header RequestHeader, parent *SpanContext) (Span, bool) {
	in := h.in
	var span Span
	ok := h.step("start_span", func() error {
		names := in.namer.names(&ev, header)
		tags := map[string]string{
			TagSpanKind:   string(kind),
			TagComponent:  ComponentName,
			TagURI:        names.uri,
			TagMethodName: names.method,
		}
		if header != nil {
			tags[TagMethodID] = strconv.FormatInt(int64(header.MethodID()), 10)
			tags[TagInterfaceID] = strconv.FormatInt(int64(header.InterfaceID()), 10)
			tags[TagInvocationID] = header.InvocationID()
		}
		if r := in.rate(kind); r.ok {
			tags[TagAnalytics] = r.value
		}

		s, err := in.tracer.StartSpan(h.ctx, OperationName(kind), SpanOptions{
			Kind:     kind,
			Resource: names.resource,
			Tags:     tags,
			Parent:   parent,
			NewRoot:  kind == KindServer && parent == nil,
		})
		if err != nil {
			return err
		}
		if s == nil {
			return ErrNilSpan
		}
		span = s
		return nil
	})
	return span, ok
}

// activate 激活 span，失败时返回原 ctx
func (h *handling) activate(span Span, header RequestHeader) context.Context {
	out := h.ctx
	h.step("activate", func() error {
		next, err := h.in.tracer.Activate(h.ctx, span)
		if err != nil {
			return err
		}
		if next != nil {
			out = next
		}
		return nil
	})
	if header != nil {
		h.step("invocation_id", func() error {
			id := header.InvocationID()
			if id == "" {
				return nil
			}
			next, err := xctx.WithInvocationID(out, id)
			if err != nil {
				return err
			}
			out = next
			return nil
		})
	}
	return out
}

// clientContext 以 span 自身的标识构造传播上下文
func (in *Instrumentation) clientContext(span Span) xpropagation.Context {
	var opts []xpropagation.Option
	if p, ok := span.SamplingPriority(); ok {
		opts = append(opts, xpropagation.WithSamplingPriority(p))
	}
	if origin, ok := span.Tag(TagOrigin); ok {
		opts = append(opts, xpropagation.WithOrigin(origin))
	}
	return xpropagation.New(span.TraceID(), span.SpanID(), opts...)
}

// finishSpan 校验 ctx 中的活跃 span 属于期望角色后结束它。
// 没有活跃 span 或操作名不匹配时只记录警告。
func (in *Instrumentation) finishSpan(h *handling, kind SpanKind, payload any) {
	var (
		span  Span
		found bool
	)
	if !h.step("active_span", func() error {
		span, found = in.tracer.ActiveSpan(h.ctx)
		return nil
	}) {
		h.skip()
		return
	}
	if !found || span == nil {
		h.warn("expected an active span, but there is none")
		h.skip()
		return
	}

	expected := OperationName(kind)
	var actual string
	if !h.step("operation_name", func() error {
		actual = span.OperationName()
		return nil
	}) {
		h.skip()
		return
	}
	if actual != expected {
		h.warn("active span does not match the expected operation",
			slog.String("expected", expected), slog.String("actual", actual))
		h.skip()
		return
	}

	if failed, err := Adapt[FailedResponseEvent](payload); err == nil && failed.Err != nil {
		h.step("set_error", func() error {
			span.SetError(failed.Err)
			return nil
		})
	}

	h.step("finish", func() error {
		span.Finish()
		return nil
	})
	h.done()
}
