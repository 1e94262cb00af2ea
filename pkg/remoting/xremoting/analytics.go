package xremoting

import (
	"strconv"

	"github.com/omeyang/xremote/pkg/config/xconf"
)

// rateTag 缓存的 analytics 标签值，ok=false 表示不设置标签
type rateTag struct {
	value string
	ok    bool
}

// ResolveAnalyticsRate 计算角色对应的 analytics 采样率标签值。
//
// 集成显式设置了 analytics_enabled 时以其为准；否则只有服务端角色回退到全局开关，
// 客户端角色视为关闭。启用时返回采样率的规范文本形式。
func ResolveAnalyticsRate(s *xconf.Settings, integration string, kind SpanKind) (string, bool) {
	is := s.Integration(integration)

	enabled := kind == KindServer && s != nil && s.AnalyticsEnabled
	if is.AnalyticsEnabled != nil {
		enabled = *is.AnalyticsEnabled
	}
	if !enabled {
		return "", false
	}
	return strconv.FormatFloat(is.SampleRate(), 'f', -1, 64), true
}

func resolveRateTag(s *xconf.Settings, integration string, kind SpanKind) rateTag {
	v, ok := ResolveAnalyticsRate(s, integration, kind)
	return rateTag{value: v, ok: ok}
}
