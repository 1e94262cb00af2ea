package xpropagation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omeyang/xremote/pkg/remoting/xpropagation"
)

func TestSamplingPriority_String(t *testing.T) {
	tests := []struct {
		p    xpropagation.SamplingPriority
		want string
	}{
		{xpropagation.UserReject, "user_reject"},
		{xpropagation.AutoReject, "auto_reject"},
		{xpropagation.AutoKeep, "auto_keep"},
		{xpropagation.UserKeep, "user_keep"},
		{xpropagation.SamplingPriority(7), "7"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.String())
		})
	}
}

func TestSamplingPriority_Keep(t *testing.T) {
	assert.False(t, xpropagation.UserReject.Keep())
	assert.False(t, xpropagation.AutoReject.Keep())
	assert.True(t, xpropagation.AutoKeep.Keep())
	assert.True(t, xpropagation.UserKeep.Keep())
}

func TestContext_Accessors(t *testing.T) {
	pc := xpropagation.New(123456, 1,
		xpropagation.WithSamplingPriority(xpropagation.AutoKeep),
		xpropagation.WithOrigin("rum"),
	)

	assert.Equal(t, uint64(123456), pc.TraceID())
	assert.Equal(t, uint64(1), pc.ParentSpanID())

	p, ok := pc.SamplingPriority()
	assert.True(t, ok)
	assert.Equal(t, xpropagation.AutoKeep, p)

	origin, ok := pc.Origin()
	assert.True(t, ok)
	assert.Equal(t, "rum", origin)
	assert.True(t, pc.IsValid())
}

func TestContext_Optional(t *testing.T) {
	pc := xpropagation.New(1, 2, xpropagation.WithOrigin(""), nil)

	_, ok := pc.SamplingPriority()
	assert.False(t, ok)
	_, ok = pc.Origin()
	assert.False(t, ok)
}

func TestContext_IsValid(t *testing.T) {
	assert.False(t, xpropagation.New(0, 1).IsValid())
	assert.False(t, xpropagation.New(1, 0).IsValid())
	assert.False(t, xpropagation.Context{}.IsValid())
}

func TestContext_Comparable(t *testing.T) {
	a := xpropagation.New(1, 2, xpropagation.WithSamplingPriority(xpropagation.AutoReject))
	b := xpropagation.New(1, 2, xpropagation.WithSamplingPriority(xpropagation.AutoReject))
	c := xpropagation.New(1, 2)

	assert.True(t, a == b)
	assert.False(t, a == c, "显式 AutoReject 与未设置不同")
}
