package xheader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrDuplicateHeader 表示头部已存在，Add 不会覆盖。
	ErrDuplicateHeader = errors.New("xheader: header already exists")

	// ErrNilStore 表示头部存储为 nil。
	ErrNilStore = errors.New("xheader: nil header store")
)

// 固定宽度
const (
	Uint64Size = 8
	Int32Size  = 4
)

// Store 单次调用的头部存储。实现无需并发安全（一次调用只在一个 goroutine 上处理）。
type Store interface {
	// Get 返回头部值，不存在时 ok 为 false
	Get(name string) (value []byte, ok bool)

	// Add 写入头部，name 已存在时返回 ErrDuplicateHeader（包装后亦可）
	Add(name string, value []byte) error
}

// TryAdd 仅在 name 不存在时写入，value 仅在需要写入时求值。
// 返回是否写入。
func TryAdd(s Store, name string, value func() []byte) (bool, error) {
	if s == nil {
		return false, ErrNilStore
	}
	if _, ok := s.Get(name); ok {
		return false, nil
	}
	if err := s.Add(name, value()); err != nil {
		return false, fmt.Errorf("xheader: add %s: %w", name, err)
	}
	return true, nil
}

// Uint64 读取 8 字节无符号整数，不存在或宽度不符时 ok 为 false
func Uint64(s Store, name string) (uint64, bool) {
	b, ok := get(s, name)
	if !ok || len(b) != Uint64Size {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}

// Int32 读取 4 字节有符号整数，不存在或宽度不符时 ok 为 false
func Int32(s Store, name string) (int32, bool) {
	b, ok := get(s, name)
	if !ok || len(b) != Int32Size {
		return 0, false
	}
	return int32(binary.LittleEndian.Uint32(b)), true
}

// String 读取 UTF-8 字符串，不存在、为空或不是合法 UTF-8 时 ok 为 false
func String(s Store, name string) (string, bool) {
	b, ok := get(s, name)
	if !ok || len(b) == 0 || !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// EncodeUint64 编码 8 字节无符号整数
func EncodeUint64(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(make([]byte, 0, Uint64Size), v)
}

// EncodeInt32 编码 4 字节有符号整数
func EncodeInt32(v int32) []byte {
	return binary.LittleEndian.AppendUint32(make([]byte, 0, Int32Size), uint32(v))
}

func get(s Store, name string) ([]byte, bool) {
	if s == nil {
		return nil, false
	}
	return s.Get(name)
}
