package xremoting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapt(t *testing.T) {
	ev := RequestEvent{ServiceURI: "fabric:/a", MethodName: "M"}

	got, err := Adapt[RequestEvent](ev)
	require.NoError(t, err)
	assert.Equal(t, ev, got)

	got, err = Adapt[RequestEvent](&ev)
	require.NoError(t, err)
	assert.Equal(t, ev, got)
}

func TestAdapt_Failures(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		got     string
	}{
		{name: "nil", payload: nil, got: "<nil>"},
		{name: "nil 指针", payload: (*FailedResponseEvent)(nil), got: "*xremoting.FailedResponseEvent"},
		{name: "其它事件", payload: ResponseEvent{}, got: "xremoting.ResponseEvent"},
		{name: "任意类型", payload: 42, got: "int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Adapt[FailedResponseEvent](tt.payload)

			var ae *AdaptError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, "xremoting.FailedResponseEvent", ae.Want)
			assert.Equal(t, tt.got, ae.Got)
			assert.Contains(t, err.Error(), "cannot adapt")
		})
	}
}

func TestSpanContextFrom(t *testing.T) {
	assert.Equal(t, SpanContext{TraceID: 1, SpanID: 2}, SpanContextFrom(newContext(1, 2)))
}
