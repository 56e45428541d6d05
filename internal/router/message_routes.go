// Package router 提供 HTTP 路由注册
// 本文件定义消息查询相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes 注册消息相关路由（需要认证）
// 消息收发走 WebSocket，这里只有历史查询和未读统计
func (rt *Router) RegisterMessageRoutes(rg *gin.RouterGroup) {
	messageGroup := rg.Group("/message")
	{
		messageGroup.GET("/list", rt.handlers.Message.GetMessageList)          // 查询会话消息列表
		messageGroup.GET("/unreadCount", rt.handlers.Message.GetUnreadCount)   // 查询未读数
	}
}
