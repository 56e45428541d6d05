// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 握手路由
// 不挂 JWT 中间件：浏览器 WebSocket API 不能自定义请求头，
// 握手处理器自行按 头 -> 查询参数 -> 原始查询串 的优先级解析凭证
func (rt *Router) RegisterWebSocketRoutes(engine *gin.Engine) {
	// 请求示例: wss://host:port/ws?token=xxx
	engine.GET("/ws", rt.handlers.Ws.Connect)
}
