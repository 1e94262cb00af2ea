// xremotectl 是追踪上下文头部的命令行调试工具。
//
// 用法:
//
//	xremotectl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-e, --encoding   头部值编码 hex|base64 (默认: hex)
//	    --grpc       使用 gRPC 二进制 metadata 键（<name>-bin）
//	    --log-level  日志级别 (默认: warn)
//
// 命令:
//
//	encode         按给定字段生成追踪头部
//	decode         从 name=value 形式的头部解析追踪上下文
//	rates          按配置文件计算客户端/服务端 analytics 采样率标签（--watch 监视变更）
//	help           显示帮助信息
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（decode 命令: 头部中没有有效的追踪上下文）
//	2: 参数错误（无效 ID、无效编码、未知命令等）
//
// 示例:
//
//	xremotectl encode --trace-id 42 --parent-id 7 --priority user_keep
//	xremotectl decode x-datadog-trace-id=2a00000000000000 x-datadog-parent-id=0700000000000000
//	xremotectl --grpc encode --trace-id 42 --parent-id 7 --origin synthetics
//	xremotectl rates --config tracing.yaml --integration ServiceRemoting
//	xremotectl rates --config tracing.yaml --watch
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	// rates --watch 依赖 ctx 取消退出
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args)
	stop()
	os.Exit(code)
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xremotectl",
		Usage:   "追踪上下文头部调试工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "encoding",
				Aliases: []string{"e"},
				Usage:   "头部值编码 (hex|base64)",
				Value:   encodingHex,
			},
			&cli.BoolFlag{
				Name:  "grpc",
				Usage: "使用 gRPC 二进制 metadata 键",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug|info|warn|error)",
				Value: "warn",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		Authors: []any{
			"XRemote Team",
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
		Description: `xremotectl 用于离线构造和检查服务间调用携带的追踪头部。

头部（均为小端二进制）:
  x-datadog-trace-id           8 字节 trace id
  x-datadog-parent-id          8 字节父 span id
  x-datadog-sampling-priority  4 字节采样优先级（可选）
  x-datadog-origin             UTF-8 来源标识（可选）`,
	}
}

// run 执行应用并返回退出码。
func run(ctx context.Context, args []string) int {
	return runApp(ctx, createApp(), args)
}

func runApp(ctx context.Context, app *cli.Command, args []string) int {
	if app.ErrWriter == nil {
		app.ErrWriter = os.Stderr
	}

	if err := app.Run(ctx, args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(app.ErrWriter, "参数错误: %v\n", usageErr)
			return 2
		}
		// CLI 框架产生的参数错误（如未知 flag、未知命令）也返回退出码 2。
		if isCLIUsageError(err) {
			return 2
		}
		fmt.Fprintf(app.ErrWriter, "错误: %v\n", err)
		return 1
	}

	return 0
}
