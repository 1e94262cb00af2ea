package xgrpc

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/omeyang/xremote/pkg/remoting/xremoting"
)

// =============================================================================
// 选项
// =============================================================================

type config struct {
	newInvocationID func() string
}

// Option 拦截器选项
type Option func(*config)

// WithInvocationIDFunc 设置调用 ID 生成函数，默认 uuid.NewString
func WithInvocationIDFunc(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.newInvocationID = fn
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{newInvocationID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// =============================================================================
// 客户端
// =============================================================================

// UnaryClientInterceptor 返回一元客户端拦截器。
//
// 在 outgoing metadata 的副本上构造请求头部，触发 ClientSendRequest 后
// 以更新后的 metadata 发送，返回时按结果触发 ClientReceiveResponse。
func UnaryClientInterceptor(d *xremoting.Dispatcher, opts ...Option) grpc.UnaryClientInterceptor {
	cfg := newConfig(opts)

	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		callOpts ...grpc.CallOption,
	) error {
		if d == nil {
			return invoker(ctx, method, req, reply, cc, callOpts...)
		}

		outgoing, _ := metadata.FromOutgoingContext(ctx)
		md := outgoing.Copy()

		invocationID := firstValue(md, MetaInvocationID)
		if invocationID == "" {
			invocationID = cfg.newInvocationID()
			md.Set(MetaInvocationID, invocationID)
		}

		service, name := SplitMethod(method)
		var target string
		if cc != nil {
			target = cc.Target()
		}
		r := request{header: newRequestHeader(md, service, name, invocationID)}

		callCtx := d.Fire(ctx, xremoting.ClientSendRequest, xremoting.RequestEvent{
			Request:    r,
			ServiceURI: ServiceURI(target, service),
			MethodName: name,
		})

		err := invoker(metadata.NewOutgoingContext(callCtx, r.header.MD()), method, req, reply, cc, callOpts...)

		if err != nil {
			d.Fire(callCtx, xremoting.ClientReceiveResponse, xremoting.FailedResponseEvent{Request: r, Err: err})
		} else {
			d.Fire(callCtx, xremoting.ClientReceiveResponse, xremoting.ResponseEvent{Request: r, Response: reply})
		}
		return err
	}
}

// =============================================================================
// 服务端
// =============================================================================

// UnaryServerInterceptor 返回一元服务端拦截器。
//
// 在 incoming metadata 上构造请求头部，触发 ServerReceiveRequest 后
// 以返回的 ctx 调用 handler，完成后按结果触发 ServerSendResponse。
func UnaryServerInterceptor(d *xremoting.Dispatcher, opts ...Option) grpc.UnaryServerInterceptor {
	cfg := newConfig(opts)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if d == nil || info == nil {
			return handler(ctx, req)
		}

		incoming, _ := metadata.FromIncomingContext(ctx)
		md := incoming.Copy()

		invocationID := firstValue(md, MetaInvocationID)
		if invocationID == "" {
			invocationID = cfg.newInvocationID()
		}

		service, name := SplitMethod(info.FullMethod)
		r := request{header: newRequestHeader(md, service, name, invocationID)}

		callCtx := d.Fire(ctx, xremoting.ServerReceiveRequest, xremoting.RequestEvent{
			Request:    r,
			ServiceURI: ServiceURI(firstValue(md, ":authority"), service),
			MethodName: name,
		})

		resp, err := handler(callCtx, req)

		if err != nil {
			d.Fire(callCtx, xremoting.ServerSendResponse, xremoting.FailedResponseEvent{Request: r, Err: err})
		} else {
			d.Fire(callCtx, xremoting.ServerSendResponse, xremoting.ResponseEvent{Request: r, Response: resp})
		}
		return resp, err
	}
}
