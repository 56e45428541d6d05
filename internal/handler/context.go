package handler

import (
	"github.com/gin-gonic/gin"

	"yuanfen_chat_server/internal/infrastructure/middleware"
	"yuanfen_chat_server/internal/model"
	"yuanfen_chat_server/internal/service/user"
	"yuanfen_chat_server/pkg/errorx"
)

// currentUserProfile 从上下文取登录账号并换成用户资料
// JWT 中间件只写入 account_id，业务层统一用用户资料 ID 作身份
func currentUserProfile(c *gin.Context, userSvc *user.Service) (*model.UserProfile, error) {
	accountId := c.GetInt64(middleware.ContextAccountIdKey)
	if accountId == 0 {
		return nil, errorx.New(errorx.CodeUnauthorized, "请先登录")
	}
	return userSvc.FindProfileByAccountId(accountId)
}
