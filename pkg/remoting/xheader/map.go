package xheader

import (
	"maps"
	"slices"
)

var _ Store = Map(nil)

// Map 内存头部存储，键区分大小写。零值不可写，使用 NewMap 或 make。
type Map map[string][]byte

// NewMap 创建空的 Map
func NewMap() Map {
	return make(Map)
}

// Get 返回头部值
func (m Map) Get(name string) ([]byte, bool) {
	v, ok := m[name]
	return v, ok
}

// Add 写入头部，已存在时返回 ErrDuplicateHeader。
// 值会被复制，调用方可继续复用传入的切片。
func (m Map) Add(name string, value []byte) error {
	if m == nil {
		return ErrNilStore
	}
	if _, ok := m[name]; ok {
		return ErrDuplicateHeader
	}
	m[name] = slices.Clone(value)
	return nil
}

// Len 返回头部数量
func (m Map) Len() int {
	return len(m)
}

// Keys 返回排序后的头部名
func (m Map) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}
