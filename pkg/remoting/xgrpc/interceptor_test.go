package xgrpc_test

import (
	"context"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/omeyang/xremote/pkg/observability/xlog"
	"github.com/omeyang/xremote/pkg/remoting/xgrpc"
	"github.com/omeyang/xremote/pkg/remoting/xheader"
	"github.com/omeyang/xremote/pkg/remoting/xotel"
	"github.com/omeyang/xremote/pkg/remoting/xpropagation"
	"github.com/omeyang/xremote/pkg/remoting/xremoting"
)

// =============================================================================
// 测试辅助
// =============================================================================

// newDispatcher 创建独立的 Instrumentation（模拟独立进程），共享同一个 TracerProvider
func newDispatcher(t *testing.T, tp *sdktrace.TracerProvider) *xremoting.Dispatcher {
	t.Helper()

	logger, cleanup, err := xlog.New().SetOutput(io.Discard).Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	inst, err := xremoting.New(xotel.New(xotel.WithTracerProvider(tp)), xremoting.WithLogger(logger))
	require.NoError(t, err)

	d := xremoting.NewDispatcher(xremoting.WithDispatcherLogger(logger))
	require.NoError(t, inst.Start(context.Background(), d))
	return d
}

func newProvider(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := xotel.NewTracerProvider("xgrpc-test", sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, sr
}

// startHealthServer 在 bufconn 上启动 health 服务，返回已连接的客户端
func startHealthServer(t *testing.T, serverD, clientD *xremoting.Dispatcher) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(xgrpc.UnaryServerInterceptor(serverD)))
	healthpb.RegisterHealthServer(srv, health.NewServer())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(xgrpc.UnaryClientInterceptor(clientD)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		<-done
	})
	return healthpb.NewHealthClient(conn)
}

func spanByName(t *testing.T, sr *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, s := range sr.Ended() {
		if s.Name() == name {
			return s
		}
	}
	require.Failf(t, "span not found", "no ended span named %s", name)
	return nil
}

func attr(s sdktrace.ReadOnlySpan, key string) string {
	for _, kv := range s.Attributes() {
		if string(kv.Key) == key {
			return kv.Value.Emit()
		}
	}
	return ""
}

// =============================================================================
// 端到端
// =============================================================================

func TestUnary_EndToEnd(t *testing.T) {
	tp, sr := newProvider(t)
	client := startHealthServer(t, newDispatcher(t, tp), newDispatcher(t, tp))

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	require.Len(t, sr.Ended(), 2)
	c := spanByName(t, sr, "service-remoting.client")
	s := spanByName(t, sr, "service-remoting.server")

	assert.Equal(t, c.SpanContext().TraceID(), s.SpanContext().TraceID())
	assert.Equal(t, c.SpanContext().SpanID(), s.Parent().SpanID())

	assert.Equal(t, "grpc://bufnet/grpc.health.v1.Health/Check", attr(c, xotel.AttrResource))
	assert.True(t, strings.HasSuffix(attr(s, xotel.AttrResource), "/grpc.health.v1.Health/Check"))
	assert.Equal(t, "Check", attr(s, xremoting.TagMethodName))

	// 调用 ID 从客户端传到服务端
	assert.NotEmpty(t, attr(c, xremoting.TagInvocationID))
	assert.Equal(t, attr(c, xremoting.TagInvocationID), attr(s, xremoting.TagInvocationID))
}

func TestUnary_ErrorPassesThrough(t *testing.T) {
	tp, sr := newProvider(t)
	client := startHealthServer(t, newDispatcher(t, tp), newDispatcher(t, tp))

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "missing"})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))

	require.Len(t, sr.Ended(), 2)
	assert.Equal(t, otelcodes.Error, spanByName(t, sr, "service-remoting.client").Status().Code)
	assert.Equal(t, otelcodes.Error, spanByName(t, sr, "service-remoting.server").Status().Code)
}

func TestUnary_KeepsExistingHeaders(t *testing.T) {
	tp, sr := newProvider(t)
	client := startHealthServer(t, newDispatcher(t, tp), newDispatcher(t, tp))

	// 外层调用已写入 trace id，客户端拦截器不覆盖
	ctx := metadata.AppendToOutgoingContext(context.Background(),
		xheader.BinaryKey(xpropagation.HeaderTraceID), string(xheader.EncodeUint64(424242)),
		xgrpc.MetaInvocationID, "outer-invocation",
	)
	_, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)

	s := spanByName(t, sr, "service-remoting.server")
	assert.Equal(t, uint64(424242), xotel.LowTraceID(s.SpanContext().TraceID()))
	assert.Equal(t, "outer-invocation", attr(s, xremoting.TagInvocationID))
}

// =============================================================================
// 拦截器单元测试
// =============================================================================

func TestUnaryClientInterceptor_InjectsBinaryMetadata(t *testing.T) {
	tp, _ := newProvider(t)
	interceptor := xgrpc.UnaryClientInterceptor(newDispatcher(t, tp),
		xgrpc.WithInvocationIDFunc(func() string { return "fixed-id" }))

	original := metadata.Pairs("x-tenant", "acme")
	ctx := metadata.NewOutgoingContext(context.Background(), original)

	var sent metadata.MD
	invoker := func(ctx context.Context, _ string, _, _ any, _ *grpc.ClientConn, _ ...grpc.CallOption) error {
		sent, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	require.NoError(t, interceptor(ctx, "/shop.Orders/Get", "req", "reply", nil, invoker))

	assert.Equal(t, []string{"acme"}, sent.Get("x-tenant"))
	assert.Equal(t, []string{"fixed-id"}, sent.Get(xgrpc.MetaInvocationID))
	assert.Len(t, sent.Get(xheader.BinaryKey(xpropagation.HeaderTraceID)), 1)
	assert.Len(t, sent.Get(xheader.BinaryKey(xpropagation.HeaderParentID)), 1)

	// 调用方的 metadata 不被修改
	assert.Empty(t, original.Get(xgrpc.MetaInvocationID))
}

func TestInterceptors_NilDispatcher(t *testing.T) {
	client := xgrpc.UnaryClientInterceptor(nil)
	called := false
	err := client(context.Background(), "/a.B/C", nil, nil, nil,
		func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error {
			called = true
			return nil
		})
	require.NoError(t, err)
	assert.True(t, called)

	server := xgrpc.UnaryServerInterceptor(nil)
	resp, err := server(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/a.B/C"},
		func(_ context.Context, req any) (any, error) { return req, nil })
	require.NoError(t, err)
	assert.Equal(t, "req", resp)
}
