package xconf

import "errors"

// 配置加载和解析相关错误。
var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("xconf: empty config path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")

	// ErrLoadFailed 表示配置加载失败。
	ErrLoadFailed = errors.New("xconf: failed to load config")

	// ErrParseFailed 表示配置解析失败。
	ErrParseFailed = errors.New("xconf: failed to parse config")

	// ErrUnmarshalFailed 表示配置反序列化失败。
	ErrUnmarshalFailed = errors.New("xconf: failed to unmarshal config")

	// ErrInvalidSampleRate 表示采样率不在 [0, 1] 范围内。
	ErrInvalidSampleRate = errors.New("xconf: analytics_sample_rate must be in [0, 1]")

	// ErrReloadFromBytes 表示从字节数据创建的配置不支持重载或监视。
	ErrReloadFromBytes = errors.New("xconf: cannot reload config created from bytes")

	// ErrWatchUnsupported 表示 Config 不是由本包创建，无法监视。
	ErrWatchUnsupported = errors.New("xconf: unsupported config type for watch")
)
