// Package xpropagation 在 RPC 头部存储中编解码分布式追踪上下文。
//
// # 上下文
//
// [Context] 是不可变值类型，包含：
//   - TraceID / ParentSpanID：64 位，零值表示不存在
//   - SamplingPriority：可选的采样决策
//   - Origin：可选的来源标记（如 "rum"、"synthetics"）
//
// 仅当两个 ID 都非零时上下文才可用于传播（[Context.IsValid]）。
//
// # 头部格式
//
//	x-datadog-trace-id           8 字节无符号整数
//	x-datadog-parent-id          8 字节无符号整数
//	x-datadog-sampling-priority  4 字节有符号整数
//	x-datadog-origin             UTF-8 字节
//
// 整数采用小端序。宽度不符的头部仅使该字段视为不存在。
//
// # 尽力而为
//
// [Inject] 与 [Extract] 永不 panic、不返回错误：存储失败会记录日志，
// 注入返回已写入的头部数量，提取返回 ok=false。
//
// # 使用示例
//
//	store := xheader.NewMap()
//	pc := xpropagation.New(traceID, spanID, xpropagation.WithSamplingPriority(xpropagation.AutoKeep))
//	xpropagation.Inject(ctx, pc, store)
//
//	if pc, ok := xpropagation.Extract(ctx, store); ok {
//	    // 以 pc 为父上下文创建服务端 span
//	}
package xpropagation
