package xconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// rootPath 追踪配置所在节点
const rootPath = "tracing"

// Config 追踪配置实例。
type Config interface {
	// Settings 返回当前配置快照，不得修改。
	Settings() *Settings

	// Reload 重新加载配置文件，仅对从文件创建的 Config 有效。
	Reload() error

	// Path 返回配置文件路径，从字节数据创建时为空。
	Path() string

	// Format 返回配置格式。
	Format() Format
}

type koanfConfig struct {
	settings atomic.Pointer[Settings]
	path     string
	format   Format
	mu       sync.Mutex // 序列化 Reload
	isBytes  bool
}

// New 从文件路径创建配置实例，根据扩展名检测格式。
func New(path string) (Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	settings, err := parse(data, format)
	if err != nil {
		return nil, err
	}

	c := &koanfConfig{path: path, format: format}
	c.settings.Store(settings)
	return c, nil
}

// NewFromBytes 从字节数据创建配置实例，需显式指定格式。
// 空数据得到默认配置。
func NewFromBytes(data []byte, format Format) (Config, error) {
	if !isValidFormat(format) {
		return nil, ErrUnsupportedFormat
	}
	settings, err := parse(data, format)
	if err != nil {
		return nil, err
	}

	c := &koanfConfig{format: format, isBytes: true}
	c.settings.Store(settings)
	return c, nil
}

func (c *koanfConfig) Settings() *Settings {
	return c.settings.Load()
}

func (c *koanfConfig) Reload() error {
	if c.isBytes {
		return ErrReloadFromBytes
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	settings, err := parse(data, c.format)
	if err != nil {
		return err
	}
	c.settings.Store(settings)
	return nil
}

func (c *koanfConfig) Path() string {
	return c.path
}

func (c *koanfConfig) Format() Format {
	return c.format
}

// =============================================================================
// 内部辅助函数
// =============================================================================

// parse 将数据解析为 Settings，缺失字段保留默认值。
func parse(data []byte, format Format) (*Settings, error) {
	k := koanf.New(".")
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parserFor(format)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}

	settings := DefaultSettings()
	if err := k.UnmarshalWithConf(rootPath, settings, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	if settings.Integrations == nil {
		settings.Integrations = map[string]IntegrationSettings{}
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func parserFor(format Format) koanf.Parser {
	if format == FormatJSON {
		return json.Parser()
	}
	return yaml.Parser()
}

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, ext)
	}
}

func isValidFormat(format Format) bool {
	return format == FormatYAML || format == FormatJSON
}
