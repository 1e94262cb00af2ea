package xotel

import (
	"context"
	"encoding/binary"
	"math/rand/v2"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// NewTracerProvider 创建带服务名资源的 TracerProvider，采样器为 ParentBased(AlwaysSample)，
// ID 生成器为 NewIDGenerator（64 位 trace id）。
// opts 追加在默认选项之后，可覆盖采样器或添加 exporter。
func NewTracerProvider(service string, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	base := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithIDGenerator(NewIDGenerator()),
	}
	return sdktrace.NewTracerProvider(append(base, opts...)...)
}

// NewIDGenerator 返回高 64 位恒为零的 ID 生成器。
//
// 头部只携带 trace id 的低 64 位，对端按高位为零重建父上下文；
// 根 span 的 trace id 若带有随机高位，客户端与服务端会落在两条 OTel trace 上。
func NewIDGenerator() sdktrace.IDGenerator {
	return idGenerator{}
}

type idGenerator struct{}

var _ sdktrace.IDGenerator = idGenerator{}

// NewIDs 生成非零的 64 位 trace id 与 span id
func (idGenerator) NewIDs(context.Context) (trace.TraceID, trace.SpanID) {
	var tid trace.TraceID
	binary.BigEndian.PutUint64(tid[8:], nonZero())
	return tid, newSpanID()
}

// NewSpanID 生成非零 span id
func (idGenerator) NewSpanID(context.Context, trace.TraceID) trace.SpanID {
	return newSpanID()
}

func newSpanID() trace.SpanID {
	var sid trace.SpanID
	binary.BigEndian.PutUint64(sid[:], nonZero())
	return sid
}

// nonZero math/rand/v2 顶层函数并发安全
func nonZero() uint64 {
	for {
		if v := rand.Uint64(); v != 0 {
			return v
		}
	}
}
