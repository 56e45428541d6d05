// Package router 提供 HTTP 路由注册
// 本文件定义通知相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes 注册通知相关路由（需要认证）
func (rt *Router) RegisterNotificationRoutes(rg *gin.RouterGroup) {
	notificationGroup := rg.Group("/notification")
	{
		notificationGroup.GET("/list", rt.handlers.Notification.GetNotifications)            // 通知列表
		notificationGroup.GET("/unread", rt.handlers.Notification.GetUnreadNotifications)    // 未读通知
		notificationGroup.POST("/:id/read", rt.handlers.Notification.MarkRead)               // 通知置已读
	}
}
