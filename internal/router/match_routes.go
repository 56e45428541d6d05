// Package router 提供 HTTP 路由注册
// 本文件定义配对相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterMatchRoutes 注册配对相关路由（需要认证）
func (rt *Router) RegisterMatchRoutes(rg *gin.RouterGroup) {
	matchGroup := rg.Group("/match")
	{
		matchGroup.POST("/create", rt.handlers.Match.CreateMatch) // 创建配对
		matchGroup.GET("/list", rt.handlers.Match.GetMatches)     // 配对列表
	}
}
