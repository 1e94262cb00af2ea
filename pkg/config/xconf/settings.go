package xconf

import (
	"fmt"
	"math"
)

// DefaultSampleRate 集成未配置采样率时的默认值
const DefaultSampleRate = 1.0

// Settings 追踪配置（tracing 节点）
type Settings struct {
	// Enabled 全局追踪开关
	Enabled bool `koanf:"enabled"`

	// AnalyticsEnabled 全局 analytics 开关
	AnalyticsEnabled bool `koanf:"analytics_enabled"`

	// Integrations 按集成名称配置
	Integrations map[string]IntegrationSettings `koanf:"integrations"`
}

// IntegrationSettings 单个集成的配置
type IntegrationSettings struct {
	// Enabled 集成开关，nil 表示未设置（视为启用）
	Enabled *bool `koanf:"enabled"`

	// AnalyticsEnabled 集成 analytics 开关，nil 表示未设置
	AnalyticsEnabled *bool `koanf:"analytics_enabled"`

	// AnalyticsSampleRate analytics 采样率，[0, 1]
	AnalyticsSampleRate *float64 `koanf:"analytics_sample_rate"`
}

// DefaultSettings 返回默认配置：追踪启用，analytics 关闭
func DefaultSettings() *Settings {
	return &Settings{
		Enabled:      true,
		Integrations: map[string]IntegrationSettings{},
	}
}

// Integration 返回指定集成的配置，未配置时返回零值（全部未设置）。
// nil Settings 返回零值。
func (s *Settings) Integration(name string) IntegrationSettings {
	if s == nil || s.Integrations == nil {
		return IntegrationSettings{}
	}
	return s.Integrations[name]
}

// IntegrationEnabled 判断指定集成是否启用（全局开关 && 集成开关）
func (s *Settings) IntegrationEnabled(name string) bool {
	if s == nil || !s.Enabled {
		return false
	}
	is := s.Integration(name)
	return is.Enabled == nil || *is.Enabled
}

// SampleRate 返回采样率，未设置时返回 DefaultSampleRate
func (is IntegrationSettings) SampleRate() float64 {
	if is.AnalyticsSampleRate == nil {
		return DefaultSampleRate
	}
	return *is.AnalyticsSampleRate
}

// Validate 校验配置合法性
func (s *Settings) Validate() error {
	if s == nil {
		return nil
	}
	for name, is := range s.Integrations {
		if is.AnalyticsSampleRate == nil {
			continue
		}
		rate := *is.AnalyticsSampleRate
		if math.IsNaN(rate) || rate < 0 || rate > 1 {
			return fmt.Errorf("%w: integration %s: %v", ErrInvalidSampleRate, name, rate)
		}
	}
	return nil
}
