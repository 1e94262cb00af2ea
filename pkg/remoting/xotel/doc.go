// Package xotel 基于 OpenTelemetry 实现 xremoting.Tracer。
//
// 64 位标识与 OTel 标识的映射：
//   - trace id：OTel 128 位 trace id 的低 64 位（大端视图）
//   - span id：OTel 64 位 span id（大端视图）
//
// 远端父上下文以 128 位 trace id 高 64 位为零构造；采样优先级为拒绝时不设置
// sampled 标志，其余情况设置。
//
// 根 span 的 trace id 由 NewIDGenerator 生成（高 64 位为零），
// 因此客户端根 span 与对端按头部重建的子 span 共享完整的 128 位 trace id。
//
// Activate 同时把 span 写入 trace.ContextWithSpan 和 xctx（日志 enrich 使用）。
package xotel
