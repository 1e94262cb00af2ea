package xlog

import "log/slog"

// 常用属性 Key
const (
	KeyError     = "error"
	KeyComponent = "component"
	KeyOperation = "operation"
	KeyEvent     = "event"
)

// Err 创建错误属性，err 为 nil 时返回空属性（会被 slog 忽略）
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Component 创建组件名属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 创建操作名属性
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Event 创建事件名属性（如 client_send_request）
func Event(name string) slog.Attr {
	return slog.String(KeyEvent, name)
}
