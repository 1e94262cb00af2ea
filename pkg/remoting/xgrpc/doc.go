// Package xgrpc 把 gRPC 一元调用的生命周期转换为 xremoting 事件。
//
// 客户端拦截器依次触发 ClientSendRequest 与 ClientReceiveResponse，
// 服务端拦截器依次触发 ServerReceiveRequest 与 ServerSendResponse。
// 追踪头部以二进制 metadata（"<name>-bin"）传输。
//
// 调用元数据：
//   - 方法 ID / 接口 ID：方法名 / 服务名的 xxhash（截断为 int32）
//   - 调用 ID：客户端生成的 UUID，经 x-remoting-invocation-id 传给服务端
//   - 服务 URI：grpc://{target 或 :authority}/{service}
//
// 拦截器不改变 RPC 的请求、响应或错误。
//
// # 使用示例
//
//	d := xremoting.NewDispatcher()
//	_ = inst.Start(ctx, d)
//	srv := grpc.NewServer(grpc.UnaryInterceptor(xgrpc.UnaryServerInterceptor(d)))
//	conn, _ := grpc.NewClient(target, grpc.WithUnaryInterceptor(xgrpc.UnaryClientInterceptor(d)))
package xgrpc
