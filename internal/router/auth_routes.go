// Package router 提供 HTTP 路由注册
// 本文件定义认证相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证相关路由（无需登录态）
func (rt *Router) RegisterAuthRoutes(engine *gin.Engine) {
	authGroup := engine.Group("/auth")
	{
		authGroup.POST("/smsCode", rt.handlers.Auth.SendSmsCode)   // 发送注册验证码
		authGroup.POST("/register", rt.handlers.Auth.Register)     // 注册
		authGroup.POST("/login", rt.handlers.Auth.Login)           // 登录
		authGroup.POST("/refresh", rt.handlers.Auth.RefreshToken)  // 刷新令牌对
	}
}
