// Package xconf 加载远程调用追踪的配置，基于 koanf 实现。
//
// # 支持的格式
//
//   - YAML（默认，推荐）：.yaml, .yml
//   - JSON：.json
//
// # 配置结构
//
//	tracing:
//	  enabled: true                  # 全局开关
//	  analytics_enabled: false       # 全局 analytics 开关（仅服务端角色参考）
//	  integrations:
//	    ServiceRemoting:
//	      enabled: true
//	      analytics_enabled: true    # 可选；未设置时按角色回退
//	      analytics_sample_rate: 0.5
//
// 未出现的字段使用默认值：tracing.enabled=true，analytics_enabled=false，
// 集成 enabled=true，analytics_sample_rate=1。
//
// # 热更新
//
// Watch 基于 fsnotify 监视配置文件所在目录，变更经防抖后调用 Reload 并回调：
//
//	w, err := xconf.Watch(cfg, func(c xconf.Config, err error) { ... })
//	if err != nil { ... }
//	go w.Run(ctx)
//
// # 并发安全
//
// Reload() 通过互斥锁序列化，解析成功后原子替换 Settings；
// Settings() 返回当前快照，调用方不应修改。
package xconf
