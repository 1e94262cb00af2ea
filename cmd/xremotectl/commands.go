package main

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xremote/pkg/config/xconf"
	"github.com/omeyang/xremote/pkg/observability/xlog"
	"github.com/omeyang/xremote/pkg/remoting/xheader"
	"github.com/omeyang/xremote/pkg/remoting/xpropagation"
	"github.com/omeyang/xremote/pkg/remoting/xremoting"
)

// 头部值编码
const (
	encodingHex    = "hex"
	encodingBase64 = "base64"
)

// headerOrder 输出头部的固定顺序
var headerOrder = []string{
	xpropagation.HeaderTraceID,
	xpropagation.HeaderParentID,
	xpropagation.HeaderSamplingPriority,
	xpropagation.HeaderOrigin,
}

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 参数错误，映射到退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func newUsageError(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// cliUsageMarkers urfave/cli 与 flag 包参数错误的消息特征
var cliUsageMarkers = []string{
	"flag provided but not defined",
	"flag needs an argument",
	"invalid value",
	"Required flag",
	"No help topic",
}

// isCLIUsageError 判断错误是否由 CLI 框架的参数解析产生。
func isCLIUsageError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range cliUsageMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createEncodeCommand(),
		createDecodeCommand(),
		createRatesCommand(),
	}
}

// =============================================================================
// encode
// =============================================================================

func createEncodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "生成追踪头部",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "trace-id",
				Usage: "trace id（非零）",
			},
			&cli.Uint64Flag{
				Name:  "parent-id",
				Usage: "父 span id（非零）",
			},
			&cli.StringFlag{
				Name:  "priority",
				Usage: "采样优先级，名称 (user_reject|auto_reject|auto_keep|user_keep) 或整数",
			},
			&cli.StringFlag{
				Name:  "origin",
				Usage: "来源标识",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			encoding, err := encodingOf(cmd)
			if err != nil {
				return err
			}

			traceID, parentID := cmd.Uint64("trace-id"), cmd.Uint64("parent-id")
			if traceID == 0 || parentID == 0 {
				return newUsageError("--trace-id 与 --parent-id 必须为非零值")
			}
			var opts []xpropagation.Option
			if cmd.IsSet("priority") {
				p, err := parsePriority(cmd.String("priority"))
				if err != nil {
					return err
				}
				opts = append(opts, xpropagation.WithSamplingPriority(p))
			}
			if origin := cmd.String("origin"); origin != "" {
				opts = append(opts, xpropagation.WithOrigin(origin))
			}

			grpcKeys := cmd.Root().Bool("grpc")
			store := newStore(grpcKeys)
			codec := xpropagation.Codec{Logger: logger}
			codec.Inject(ctx, xpropagation.New(traceID, parentID, opts...), store)
			return printHeaders(cmd.Root().Writer, store, encoding, grpcKeys)
		},
	}
}

// newStore 按键风格创建空头部存储
func newStore(grpcKeys bool) xheader.Store {
	if grpcKeys {
		return xheader.NewMetadata(nil)
	}
	return xheader.NewMap()
}

func printHeaders(w io.Writer, store xheader.Store, encoding string, grpcKeys bool) error {
	for _, name := range headerOrder {
		value, ok := store.Get(name)
		if !ok {
			continue
		}
		key := name
		if grpcKeys {
			key = xheader.BinaryKey(name)
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, encodeValue(encoding, value)); err != nil {
			return err
		}
	}
	return nil
}

// parsePriority 解析优先级名称或 int32 整数
func parsePriority(s string) (xpropagation.SamplingPriority, error) {
	s = strings.TrimSpace(s)
	for _, p := range []xpropagation.SamplingPriority{
		xpropagation.UserReject,
		xpropagation.AutoReject,
		xpropagation.AutoKeep,
		xpropagation.UserKeep,
	} {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, newUsageError("无效的采样优先级 %q", s)
	}
	return xpropagation.SamplingPriority(n), nil
}

// =============================================================================
// decode
// =============================================================================

func createDecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "从头部解析追踪上下文",
		ArgsUsage: "<name=value>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			encoding, err := encodingOf(cmd)
			if err != nil {
				return err
			}
			if cmd.Args().Len() == 0 {
				return newUsageError("至少需要一个 name=value 头部")
			}

			store, err := parseHeaders(cmd.Args().Slice(), encoding, cmd.Root().Bool("grpc"))
			if err != nil {
				return err
			}

			codec := xpropagation.Codec{Logger: logger}
			pc, ok := codec.Extract(ctx, store)
			if !ok {
				fmt.Fprintln(cmd.Root().ErrWriter, "未找到有效的追踪上下文")
				return &exitError{code: 1}
			}
			return printContext(cmd.Root().Writer, pc)
		},
	}
}

// parseHeaders 将 name=value 参数解码为头部存储。
// gRPC 模式下名称按二进制 metadata 键规范化。
func parseHeaders(args []string, encoding string, grpcKeys bool) (xheader.Store, error) {
	store := newStore(grpcKeys)
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, newUsageError("无效的头部参数 %q，应为 name=value", arg)
		}
		value, err := decodeValue(encoding, raw)
		if err != nil {
			return nil, newUsageError("头部 %s 的值无法按 %s 解码: %v", name, encoding, err)
		}
		if err := store.Add(name, value); err != nil {
			if errors.Is(err, xheader.ErrDuplicateHeader) {
				return nil, newUsageError("头部 %s 重复", name)
			}
			return nil, err
		}
	}
	return store, nil
}

func printContext(w io.Writer, pc xpropagation.Context) error {
	lines := []string{
		fmt.Sprintf("trace_id=%d", pc.TraceID()),
		fmt.Sprintf("parent_id=%d", pc.ParentSpanID()),
	}
	if p, ok := pc.SamplingPriority(); ok {
		lines = append(lines, fmt.Sprintf("sampling_priority=%s (%d)", p, int32(p)))
	}
	if origin, ok := pc.Origin(); ok {
		lines = append(lines, "origin="+origin)
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// =============================================================================
// rates
// =============================================================================

func createRatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rates",
		Usage: "计算 analytics 采样率标签",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（yaml/json），为空时使用默认配置",
			},
			&cli.StringFlag{
				Name:    "integration",
				Aliases: []string{"i"},
				Usage:   "集成名称",
				Value:   xremoting.DefaultIntegration,
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "监视配置文件，变更后重新输出（Ctrl-C 退出）",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("config")
			integration := cmd.String("integration")
			w := cmd.Root().Writer

			if !cmd.Bool("watch") {
				settings, err := loadSettings(path)
				if err != nil {
					return err
				}
				printRates(w, settings, integration)
				return nil
			}

			if path == "" {
				return newUsageError("--watch 需要 --config")
			}
			cfg, err := xconf.New(path)
			if err != nil {
				return fmt.Errorf("load config %s: %w", path, err)
			}
			if err := cfg.Settings().Validate(); err != nil {
				return err
			}
			printRates(w, cfg.Settings(), integration)

			errW := cmd.Root().ErrWriter
			watcher, err := xconf.Watch(cfg, func(c xconf.Config, err error) {
				if err == nil {
					err = c.Settings().Validate()
				}
				if err != nil {
					fmt.Fprintf(errW, "重载失败: %v\n", err)
					return
				}
				fmt.Fprintln(w, "---")
				printRates(w, c.Settings(), integration)
			})
			if err != nil {
				return err
			}
			return watcher.Run(ctx)
		},
	}
}

func printRates(w io.Writer, settings *xconf.Settings, integration string) {
	fmt.Fprintf(w, "integration=%s\n", integration)
	fmt.Fprintf(w, "enabled=%t\n", settings.IntegrationEnabled(integration))
	for _, kind := range []xremoting.SpanKind{xremoting.KindClient, xremoting.KindServer} {
		rate, ok := xremoting.ResolveAnalyticsRate(settings, integration, kind)
		if !ok {
			rate = "disabled"
		}
		fmt.Fprintf(w, "%s=%s\n", kind, rate)
	}
}

func loadSettings(path string) (*xconf.Settings, error) {
	if path == "" {
		return xconf.DefaultSettings(), nil
	}
	cfg, err := xconf.New(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	settings := cfg.Settings()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// =============================================================================
// 公共
// =============================================================================

// newLogger 按 --log-level 构建写往 stderr 的 Logger
func newLogger(cmd *cli.Command) (xlog.Logger, error) {
	logger, _, err := xlog.New().
		SetOutput(cmd.Root().ErrWriter).
		SetLevelString(cmd.Root().String("log-level")).
		SetEnrich(false).
		Build()
	if err != nil {
		return nil, newUsageError("%v", err)
	}
	return logger.With(xlog.Component("xremotectl")), nil
}

func encodingOf(cmd *cli.Command) (string, error) {
	switch e := strings.ToLower(cmd.Root().String("encoding")); e {
	case encodingHex, encodingBase64:
		return e, nil
	default:
		return "", newUsageError("不支持的编码 %q", e)
	}
}

func encodeValue(encoding string, b []byte) string {
	if encoding == encodingBase64 {
		return base64.StdEncoding.EncodeToString(b)
	}
	return hex.EncodeToString(b)
}

func decodeValue(encoding, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if encoding == encodingBase64 {
		return base64.StdEncoding.DecodeString(s)
	}
	return hex.DecodeString(s)
}
