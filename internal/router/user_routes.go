// Package router 提供 HTTP 路由注册
// 本文件定义用户资料相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户相关路由（需要认证）
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.GET("/me", rt.handlers.User.GetMyProfile)     // 查询本人资料
		userGroup.GET("/:userId", rt.handlers.User.GetProfile)  // 查询指定用户资料
	}
}
