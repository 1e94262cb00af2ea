// Package context 提供上下文相关的子包。
//
// 子包列表：
//   - xctx: Context 增强，注入/提取 trace ID、span ID 与调用标识
//
// 设计原则：
//   - 所有上下文信息通过 context.Context 传递，不使用全局变量
//   - 写入函数返回新的 context，读取函数对缺失字段返回零值
package context
