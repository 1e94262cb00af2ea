// Package xheader 定义单次调用的二进制头部存储（header store）。
//
// 头部存储由传输层拥有，本包只约定两件事：
//   - 读取：Get(name) 返回原始字节
//   - 写入：Add(name, value) 在 name 已存在时返回 ErrDuplicateHeader
//
// 在此之上提供"仅在不存在时写入"（add-if-absent）的 [TryAdd]，
// 以及固定宽度的读取函数 [Uint64]、[Int32]、[String]：宽度不符的值视为不存在。
//
// 整数编码使用小端序（little-endian），与原有传输层的本机字节序保持一致。
//
// # 实现
//
//   - [Map]: 内存实现，区分大小写
//   - [Metadata]: 基于 gRPC metadata.MD，头部名映射为 "<name>-bin" 二进制键
package xheader
