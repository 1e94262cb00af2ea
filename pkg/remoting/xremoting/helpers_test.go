package xremoting

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omeyang/xremote/pkg/observability/xlog"
	"github.com/omeyang/xremote/pkg/observability/xmetrics"
	"github.com/omeyang/xremote/pkg/remoting/xheader"
)

// fakeHeader 内存请求头部
type fakeHeader struct {
	xheader.Map
	methodID     int32
	interfaceID  int32
	invocationID string
	methodName   string
}

func newFakeHeader() *fakeHeader {
	return &fakeHeader{
		Map:          xheader.NewMap(),
		methodID:     7,
		interfaceID:  -42,
		invocationID: "inv-1",
	}
}

func (h *fakeHeader) MethodID() int32      { return h.methodID }
func (h *fakeHeader) InterfaceID() int32   { return h.interfaceID }
func (h *fakeHeader) InvocationID() string { return h.invocationID }
func (h *fakeHeader) MethodName() string   { return h.methodName }

// fakeRequest 可配置失败方式的请求
type fakeRequest struct {
	header RequestHeader
	err    error
	panics bool
}

func (r fakeRequest) Header() (RequestHeader, error) {
	if r.panics {
		panic("request message disposed")
	}
	return r.header, r.err
}

// recordedEvent 一次结果上报
type recordedEvent struct {
	event  string
	status xmetrics.Status
}

// fakeRecorder 记录所有上报
type fakeRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *fakeRecorder) RecordEvent(_ context.Context, event string, status xmetrics.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{event: event, status: status})
}

func (r *fakeRecorder) last() recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return recordedEvent{}
	}
	return r.events[len(r.events)-1]
}

// testEnv 已启动的 Instrumentation 与其依赖
type testEnv struct {
	inst       *Instrumentation
	dispatcher *Dispatcher
	logs       *bytes.Buffer
	recorder   *fakeRecorder
}

func newTestEnv(t *testing.T, tracer Tracer, opts ...Option) *testEnv {
	t.Helper()

	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetFormat("json").SetLevel(xlog.LevelDebug).Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	rec := &fakeRecorder{}
	all := append([]Option{WithLogger(logger), WithRecorder(rec)}, opts...)
	inst, err := New(tracer, all...)
	require.NoError(t, err)

	d := NewDispatcher(WithDispatcherLogger(logger))
	require.NoError(t, inst.Start(context.Background(), d))

	return &testEnv{inst: inst, dispatcher: d, logs: &buf, recorder: rec}
}
