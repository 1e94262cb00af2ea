package xpropagation_test

import (
	"context"
	"testing"

	"github.com/omeyang/xremote/pkg/remoting/xheader"
	"github.com/omeyang/xremote/pkg/remoting/xpropagation"
)

// =============================================================================
// 编解码 Fuzz 测试
// =============================================================================

func FuzzRoundTrip(f *testing.F) {
	f.Add(uint64(123456), uint64(1), int32(1), true, "rum")
	f.Add(uint64(0), uint64(1), int32(0), false, "")
	f.Add(uint64(1), uint64(0), int32(-1), true, "synthetics")
	f.Add(^uint64(0), ^uint64(0), int32(2), true, "\xff")

	f.Fuzz(func(t *testing.T, traceID, parentID uint64, priority int32, hasPriority bool, origin string) {
		opts := []xpropagation.Option{xpropagation.WithOrigin(origin)}
		if hasPriority {
			opts = append(opts, xpropagation.WithSamplingPriority(xpropagation.SamplingPriority(priority)))
		}
		pc := xpropagation.New(traceID, parentID, opts...)

		store := xheader.NewMap()
		n := xpropagation.Inject(context.Background(), pc, store)
		if !pc.IsValid() {
			if n != 0 || store.Len() != 0 {
				t.Fatalf("incomplete context wrote %d headers", n)
			}
			return
		}

		got, ok := xpropagation.Extract(context.Background(), store)
		if !ok {
			t.Fatal("valid context did not round-trip")
		}
		if got.TraceID() != traceID || got.ParentSpanID() != parentID {
			t.Fatalf("ids mismatch: got (%d,%d)", got.TraceID(), got.ParentSpanID())
		}
		gotPriority, gotHas := got.SamplingPriority()
		if gotHas != hasPriority || (hasPriority && int32(gotPriority) != priority) {
			t.Fatalf("priority mismatch: got (%v,%v)", gotPriority, gotHas)
		}
	})
}

func FuzzExtract(f *testing.F) {
	f.Add([]byte{1, 0, 0, 0, 0, 0, 0, 0}, []byte{2, 0, 0, 0, 0, 0, 0, 0}, []byte{1, 0, 0, 0}, []byte("rum"))
	f.Add([]byte{}, []byte{}, []byte{}, []byte{})
	f.Add([]byte{1, 2, 3}, []byte{4, 5, 6, 7, 8, 9, 10, 11, 12}, []byte{1}, []byte{0xff})

	f.Fuzz(func(t *testing.T, traceID, parentID, priority, origin []byte) {
		store := xheader.NewMap()
		_ = store.Add(xpropagation.HeaderTraceID, traceID)
		_ = store.Add(xpropagation.HeaderParentID, parentID)
		_ = store.Add(xpropagation.HeaderSamplingPriority, priority)
		_ = store.Add(xpropagation.HeaderOrigin, origin)

		pc, ok := xpropagation.Extract(context.Background(), store)
		if ok && !pc.IsValid() {
			t.Fatal("extracted context must be valid")
		}
		if len(traceID) != 8 && ok {
			t.Fatal("wrong-width trace id must read as absent")
		}
	})
}
