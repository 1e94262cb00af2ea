package xheader

import (
	"strings"

	"google.golang.org/grpc/metadata"
)

// binarySuffix gRPC 二进制 metadata 键后缀，传输时自动 base64 编码
const binarySuffix = "-bin"

var _ Store = (*Metadata)(nil)

// Metadata 基于 gRPC metadata.MD 的头部存储。
//
// 头部名统一转小写并追加 "-bin" 后缀（gRPC 键不区分大小写，且非 ASCII 值必须使用二进制键）。
// 同一键有多个值时取第一个。
type Metadata struct {
	md metadata.MD
}

// NewMetadata 包装 md。md 为 nil 时创建新的空 metadata。
// 写入会直接修改 md；对 incoming/outgoing metadata 需先 Copy。
func NewMetadata(md metadata.MD) *Metadata {
	if md == nil {
		md = metadata.MD{}
	}
	return &Metadata{md: md}
}

// MD 返回底层 metadata
func (m *Metadata) MD() metadata.MD {
	return m.md
}

// Get 返回头部值
func (m *Metadata) Get(name string) ([]byte, bool) {
	values := m.md.Get(BinaryKey(name))
	if len(values) == 0 {
		return nil, false
	}
	return []byte(values[0]), true
}

// Add 写入头部，已存在时返回 ErrDuplicateHeader
func (m *Metadata) Add(name string, value []byte) error {
	key := BinaryKey(name)
	if len(m.md.Get(key)) > 0 {
		return ErrDuplicateHeader
	}
	m.md.Append(key, string(value))
	return nil
}

// BinaryKey 返回头部名对应的 gRPC 二进制 metadata 键
func BinaryKey(name string) string {
	key := strings.ToLower(name)
	if strings.HasSuffix(key, binarySuffix) {
		return key
	}
	return key + binarySuffix
}
