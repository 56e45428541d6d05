// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"yuanfen_chat_server/internal/handler"
	"yuanfen_chat_server/internal/infrastructure/middleware"
)

// Router 路由管理器，持有 Handler 聚合对象
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 认证路由和 WebSocket 握手不走 JWT 中间件：
// 前者本身负责发令牌，后者在握手时自行解析凭证（支持查询参数传递）
func (rt *Router) RegisterRoutes(engine *gin.Engine) {
	rt.RegisterAuthRoutes(engine)
	rt.RegisterWebSocketRoutes(engine)

	// 需要认证的业务路由组
	authed := engine.Group("/", middleware.JWTAuth())
	rt.RegisterUserRoutes(authed)
	rt.RegisterMessageRoutes(authed)
	rt.RegisterNotificationRoutes(authed)
	rt.RegisterMatchRoutes(authed)
}
