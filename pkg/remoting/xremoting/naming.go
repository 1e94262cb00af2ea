package xremoting

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

// 名称常量
const (
	// OperationPrefix 操作名前缀，操作名为 "<prefix>.<kind>"
	OperationPrefix = "service-remoting"

	// ComponentName component 标签值
	ComponentName = "service-remoting"

	// DefaultIntegration 默认集成名称（配置中 integrations 的键）
	DefaultIntegration = "ServiceRemoting"

	// DefaultResourceCacheSize 资源名缓存默认容量
	DefaultResourceCacheSize = 1024
)

// 资源名回退值
const (
	UnknownResource = "unknown"
	UnknownMethod   = "unknown_method"
	UnknownURL      = "unknown_url"
)

// 标签键
const (
	TagSpanKind     = "span.kind"
	TagComponent    = "component"
	TagURI          = "service-fabric.service-remoting.uri"
	TagMethodName   = "service-fabric.service-remoting.method-name"
	TagMethodID     = "service-fabric.service-remoting.method-id"
	TagInterfaceID  = "service-fabric.service-remoting.interface-id"
	TagInvocationID = "service-fabric.service-remoting.invocation-id"
	TagAnalytics    = "_dd1.sr.eausr"
	TagOrigin       = "_dd.origin"
)

var (
	clientOperation = OperationPrefix + "." + string(KindClient)
	serverOperation = OperationPrefix + "." + string(KindServer)
)

// OperationName 返回角色对应的操作名
func OperationName(kind SpanKind) string {
	switch kind {
	case KindClient:
		return clientOperation
	case KindServer:
		return serverOperation
	default:
		return OperationPrefix + "." + string(kind)
	}
}

// callNames 从事件和头部推导出的名称
type callNames struct {
	uri      string
	method   string
	resource string
}

type resourceKey struct {
	uri    string
	method string
}

// namer 推导资源名并缓存拼接结果
type namer struct {
	cache *lru.Cache[resourceKey, string]
}

func newNamer(size int) (*namer, error) {
	cache, err := lru.New[resourceKey, string](size)
	if err != nil {
		return nil, err
	}
	return &namer{cache: cache}, nil
}

// names 推导 uri、方法名与资源名。
//
// 方法名依次取事件方法名、头部方法名、十进制方法 ID，都没有时为 unknown_method；
// uri 为空时为 unknown_url；没有事件时资源名为 unknown。
func (n *namer) names(ev *RequestEvent, header RequestHeader) callNames {
	if ev == nil {
		return callNames{resource: UnknownResource}
	}

	method := ev.MethodName
	if method == "" && header != nil {
		method = header.MethodName()
		if method == "" {
			method = strconv.FormatInt(int64(header.MethodID()), 10)
		}
	}
	if method == "" {
		method = UnknownMethod
	}

	uri := ev.ServiceURI
	if uri == "" {
		uri = UnknownURL
	}

	return callNames{uri: uri, method: method, resource: n.resource(uri, method)}
}

func (n *namer) resource(uri, method string) string {
	key := resourceKey{uri: uri, method: method}
	if r, ok := n.cache.Get(key); ok {
		return r
	}
	r := uri + "/" + method
	n.cache.Add(key, r)
	return r
}
