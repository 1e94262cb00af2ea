// Package xmetrics 记录远程调用追踪处理器的执行结果。
//
// 业务代码只依赖 [Recorder] 接口；默认实现基于 OpenTelemetry metric。
//
//	rec, _ := xmetrics.NewOTelRecorder()
//	rec.RecordEvent(ctx, "client_send_request", xmetrics.StatusOK)
//
// # 指标命名
//
//   - xremote.event.total（属性：event / status）
package xmetrics
