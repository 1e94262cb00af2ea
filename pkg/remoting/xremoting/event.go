package xremoting

import (
	"fmt"

	"github.com/omeyang/xremote/pkg/remoting/xheader"
)

// =============================================================================
// 请求
// =============================================================================

// RequestHeader 单次调用的请求头部：头部存储加调用元数据
type RequestHeader interface {
	xheader.Store

	// MethodID 方法标识
	MethodID() int32

	// InterfaceID 接口标识
	InterfaceID() int32

	// InvocationID 调用标识
	InvocationID() string

	// MethodName 方法名，可能为空
	MethodName() string
}

// Request 宿主的请求对象。Header 可能失败甚至 panic，失败时视为没有头部。
type Request interface {
	Header() (RequestHeader, error)
}

// =============================================================================
// 事件载荷
// =============================================================================

// RequestEvent 请求事件（ClientSendRequest / ServerReceiveRequest）
type RequestEvent struct {
	Request    Request
	ServiceURI string
	MethodName string
}

// ResponseEvent 成功响应事件（ClientReceiveResponse / ServerSendResponse）
type ResponseEvent struct {
	Request  Request
	Response any
}

// FailedResponseEvent 失败响应事件（ClientReceiveResponse / ServerSendResponse）
type FailedResponseEvent struct {
	Request Request
	Err     error
}

// Event 已知事件载荷的闭合集合
type Event interface {
	RequestEvent | ResponseEvent | FailedResponseEvent
}

// AdaptError 载荷无法适配为期望的事件类型
type AdaptError struct {
	Want string
	Got  string
}

func (e *AdaptError) Error() string {
	return fmt.Sprintf("xremoting: cannot adapt %s to %s", e.Got, e.Want)
}

// Adapt 将任意载荷适配为事件类型 T，接受 T 与非 nil 的 *T。
// 其它类型（包括 nil）返回 *AdaptError。
func Adapt[T Event](payload any) (T, error) {
	var zero T
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}
	return zero, &AdaptError{Want: fmt.Sprintf("%T", zero), Got: fmt.Sprintf("%T", payload)}
}
