// Package xremoting 观察 RPC 调用的四个生命周期事件，
// 在客户端与服务端各维护一个正确配对的 span。
//
// # 事件
//
//	ClientSendRequest      创建 client span，注入追踪头部，激活
//	ClientReceiveResponse  校验当前 span 后结束（失败时附加错误）
//	ServerReceiveRequest   提取追踪头部，创建 server span（子 span 或根 span），激活
//	ServerSendResponse     校验当前 span 后结束（失败时附加错误）
//
// 当前活跃 span 通过 context.Context 传递：处理器接收调用的 ctx，
// 返回可能更新后的 ctx，宿主在同一调用的后续事件中传回。
//
// # 初始化
//
// [Instrumentation.Start] 只执行一次（原子 CAS），按顺序订阅四个事件，
// 全部成功后才置位"已订阅"标志；此前触发的事件一律忽略。启动后不支持停止。
//
// # 尽力而为
//
// 每个步骤独立执行：错误和 panic 会被记录日志并丢弃，不会影响 RPC 调用本身。
// 处理结果（ok/skipped/error）通过 xmetrics.Recorder 上报。
//
// # 使用示例
//
//	tracer := xotel.New(xotel.WithTracerProvider(tp))
//	inst, err := xremoting.New(tracer, xremoting.WithSettings(cfg.Settings()))
//	if err != nil {
//	    return err
//	}
//	d := xremoting.NewDispatcher()
//	if err := inst.Start(ctx, d); err != nil {
//	    return err
//	}
//	// 宿主在调用生命周期中执行 d.Fire(ctx, kind, event)
package xremoting
