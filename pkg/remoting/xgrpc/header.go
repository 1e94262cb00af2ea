package xgrpc

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"google.golang.org/grpc/metadata"

	"github.com/omeyang/xremote/pkg/remoting/xheader"
	"github.com/omeyang/xremote/pkg/remoting/xremoting"
)

// MetaInvocationID 调用 ID 的 metadata 键
const MetaInvocationID = "x-remoting-invocation-id"

// requestHeader gRPC metadata 上的请求头部
type requestHeader struct {
	*xheader.Metadata
	methodID     int32
	interfaceID  int32
	invocationID string
	methodName   string
}

var _ xremoting.RequestHeader = (*requestHeader)(nil)

func newRequestHeader(md metadata.MD, service, method, invocationID string) *requestHeader {
	return &requestHeader{
		Metadata:     xheader.NewMetadata(md),
		methodID:     HashID(method),
		interfaceID:  HashID(service),
		invocationID: invocationID,
		methodName:   method,
	}
}

func (h *requestHeader) MethodID() int32      { return h.methodID }
func (h *requestHeader) InterfaceID() int32   { return h.interfaceID }
func (h *requestHeader) InvocationID() string { return h.invocationID }
func (h *requestHeader) MethodName() string   { return h.methodName }

// request 一次调用的请求
type request struct {
	header *requestHeader
}

func (r request) Header() (xremoting.RequestHeader, error) {
	return r.header, nil
}

// HashID 返回名称的 32 位标识（xxhash 低 32 位）
func HashID(name string) int32 {
	return int32(uint32(xxhash.Sum64String(name)))
}

// SplitMethod 拆分 "/package.Service/Method" 形式的完整方法名
func SplitMethod(fullMethod string) (service, method string) {
	name := strings.TrimPrefix(fullMethod, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// ServiceURI 返回 grpc://{host}/{service}，host 去除 resolver scheme 前缀
func ServiceURI(host, service string) string {
	if i := strings.Index(host, ":///"); i >= 0 {
		host = host[i+len(":///"):]
	}
	if host == "" {
		return ""
	}
	return "grpc://" + host + "/" + service
}

func firstValue(md metadata.MD, key string) string {
	if v := md.Get(key); len(v) > 0 {
		return v[0]
	}
	return ""
}
