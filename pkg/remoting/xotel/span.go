package xotel

import (
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/xremote/pkg/remoting/xpropagation"
	"github.com/omeyang/xremote/pkg/remoting/xremoting"
)

// span 包装 OTel span，额外保存标签以便读取
type span struct {
	otel      trace.Span
	operation string
	priority  xpropagation.SamplingPriority
	finished  atomic.Bool

	mu   sync.RWMutex
	tags map[string]string
}

var _ xremoting.Span = (*span)(nil)

func newSpan(s trace.Span, operation string, tags map[string]string, priority xpropagation.SamplingPriority) *span {
	return &span{otel: s, operation: operation, tags: tags, priority: priority}
}

func (s *span) TraceID() uint64 {
	return LowTraceID(s.otel.SpanContext().TraceID())
}

func (s *span) SpanID() uint64 {
	return SpanIDValue(s.otel.SpanContext().SpanID())
}

func (s *span) OperationName() string {
	return s.operation
}

func (s *span) SetTag(key, value string) {
	s.mu.Lock()
	s.tags[key] = value
	s.mu.Unlock()
	s.otel.SetAttributes(attribute.String(key, value))
}

func (s *span) Tag(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.tags[key]
	return v, ok
}

func (s *span) SamplingPriority() (xpropagation.SamplingPriority, bool) {
	return s.priority, true
}

func (s *span) SetError(err error) {
	if err == nil {
		return
	}
	s.otel.RecordError(err)
	s.otel.SetStatus(codes.Error, err.Error())
}

// Finish 结束 span，重复调用无效
func (s *span) Finish() {
	if s.finished.CompareAndSwap(false, true) {
		s.otel.End()
	}
}
