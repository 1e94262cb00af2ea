package xremoting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omeyang/xremote/pkg/config/xconf"
	"github.com/omeyang/xremote/pkg/remoting/xremoting"
)

func TestResolveAnalyticsRate(t *testing.T) {
	yes, no := true, false
	rate := 0.75

	integration := func(is xconf.IntegrationSettings, global bool) *xconf.Settings {
		return &xconf.Settings{
			Enabled:          true,
			AnalyticsEnabled: global,
			Integrations:     map[string]xconf.IntegrationSettings{xremoting.DefaultIntegration: is},
		}
	}

	tests := []struct {
		name       string
		settings   *xconf.Settings
		kind       xremoting.SpanKind
		want       string
		wantEnable bool
	}{
		{name: "nil 配置", settings: nil, kind: xremoting.KindServer},
		{name: "默认配置 client", settings: xconf.DefaultSettings(), kind: xremoting.KindClient},
		{name: "默认配置 server", settings: xconf.DefaultSettings(), kind: xremoting.KindServer},
		{name: "全局开启 client 不回退", settings: integration(xconf.IntegrationSettings{}, true), kind: xremoting.KindClient},
		{name: "全局开启 server 回退", settings: integration(xconf.IntegrationSettings{}, true), kind: xremoting.KindServer, want: "1", wantEnable: true},
		{name: "集成开启 client", settings: integration(xconf.IntegrationSettings{AnalyticsEnabled: &yes, AnalyticsSampleRate: &rate}, false), kind: xremoting.KindClient, want: "0.75", wantEnable: true},
		{name: "集成关闭优先于全局", settings: integration(xconf.IntegrationSettings{AnalyticsEnabled: &no}, true), kind: xremoting.KindServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := xremoting.ResolveAnalyticsRate(tt.settings, xremoting.DefaultIntegration, tt.kind)
			assert.Equal(t, tt.wantEnable, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
