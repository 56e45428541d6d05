package middleware

import (
	"net/http"
	"strings"

	"yuanfen_chat_server/pkg/errorx"
	"yuanfen_chat_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// ContextAccountIdKey 上下文中登录账号 ID 的键
const ContextAccountIdKey = "account_id"

// JWTAuth JWT 认证中间件
// 验证 Access Token 并将账号 ID 存入上下文
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "请先登录",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "Token 格式错误，请使用 Bearer Token",
			})
			return
		}

		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "Token 已过期或无效，请重新登录",
			})
			return
		}

		// 刷新令牌不能当访问令牌用
		if claims.Subject != jwt.SubjectAccessToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "请使用 Access Token 访问此接口",
			})
			return
		}

		c.Set(ContextAccountIdKey, claims.AccountId)
		c.Next()
	}
}
