// Package xctx 提供远程调用追踪相关字段的 context 存取能力。
//
// 存放一次 RPC 调用腿上与日志关联的三个字段：
//   - trace_id      : 追踪标识（64-bit，十进制输出）
//   - span_id       : 当前活跃跨度标识（64-bit，十进制输出）
//   - invocation_id : 调用标识（由传输层生成）
//
// # 命名约定
//
//	WithXxx(ctx, value)    - 注入：将 value 写入 context
//	Xxx(ctx)               - 读取：从 context 读取值，缺失时返回零值
//	RequireXxx(ctx)        - 强制读取：值必须存在，缺失时返回错误
//
// xctx 不负责生成 ID，也不感知 span 生命周期；写入由 xremoting 的
// tracer 运行时在激活 span 时完成，读取由 xlog 的 EnrichHandler 完成。
package xctx
